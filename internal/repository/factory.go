package repository

import (
	"github.com/techsolutions/billing-service/internal/domain/invoice"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/postgres"
	postgresRepo "github.com/techsolutions/billing-service/internal/repository/postgres"
)

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}
