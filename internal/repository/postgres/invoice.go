package postgres

import (
	"context"

	"github.com/techsolutions/billing-service/internal/domain/invoice"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/postgres"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// Create inserts the invoice and assigns the store-generated identifier
func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			client_id, amount, description, date_emission, date_paiement, status, payment_method
		) VALUES (
			:client_id, :amount, :description, :date_emission, :date_paiement, :status, :payment_method
		) RETURNING id`

	r.logger.Debugw("creating invoice",
		"client_id", inv.ClientID,
		"amount", inv.Amount,
	)

	rows, err := r.db.NamedQueryContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return ierr.NewError("insert returned no id").
			WithHint("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := rows.Scan(&inv.ID); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	rows, err := r.db.NamedQueryContext(ctx, "SELECT * FROM invoices WHERE id = :id", map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice not found with id: %d", id).
			WithReportableDetails(map[string]any{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to scan invoice").
			Mark(ierr.ErrDatabase)
	}

	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices SET
			date_paiement = :date_paiement,
			status = :status,
			payment_method = :payment_method
		WHERE id = :id`

	r.logger.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"status", inv.Status,
	)

	result, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice not found with id: %d", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID int64) ([]*invoice.Invoice, error) {
	invoices := make([]*invoice.Invoice, 0)
	query := `SELECT * FROM invoices WHERE client_id = :client_id ORDER BY id`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"client_id": clientID,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.StructScan(&inv); err != nil {
			return nil, ierr.WithError(err).
				WithHint("failed to scan invoice").
				Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, &inv)
	}

	return invoices, nil
}
