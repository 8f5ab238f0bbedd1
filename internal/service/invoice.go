package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/techsolutions/billing-service/internal/api/dto"
	"github.com/techsolutions/billing-service/internal/cache"
	"github.com/techsolutions/billing-service/internal/domain/invoice"
	"github.com/techsolutions/billing-service/internal/logger"
	"github.com/techsolutions/billing-service/internal/types"
)

// TxRunner executes fn within a database transaction when the backing
// store supports one. *postgres.DB satisfies this.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error)
	ListInvoicesByClient(ctx context.Context, clientID int64) (*dto.ListInvoicesResponse, error)
	PayInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error)
	GetClientTotal(ctx context.Context, clientID int64) (*dto.ClientTotalResponse, error)
}

type invoiceService struct {
	logger      *logger.Logger
	invoiceRepo invoice.Repository
	cache       cache.Cache
	txRunner    TxRunner

	// payLocks serializes the read-check-write sequence of PayInvoice
	// per invoice id, so two concurrent payers cannot both observe
	// PENDING
	payLocks sync.Map
}

func NewInvoiceService(
	invoiceRepo invoice.Repository,
	cache cache.Cache,
	txRunner TxRunner,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		logger:      logger,
		invoiceRepo: invoiceRepo,
		cache:       cache,
		txRunner:    txRunner,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The translation layer produces a stub; emission date and initial
	// status are assigned here, the identifier by the store.
	inv := req.ToInvoice()
	inv.Status = types.InvoiceStatusPending
	inv.DateEmission = types.Today()

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		s.logger.Errorw("failed to create invoice",
			"error", err,
			"client_id", req.ClientID,
		)
		return nil, err
	}

	s.logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"client_id", inv.ClientID,
		"amount", inv.Amount,
	)

	s.cache.Set(ctx, cache.InvoiceKey(inv.ID), inv, cache.DefaultExpiration)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoicesByClient(ctx context.Context, clientID int64) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.invoiceRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = dto.NewInvoiceResponse(inv)
	}

	return &dto.ListInvoicesResponse{
		Items: items,
		Total: len(items),
	}, nil
}

func (s *invoiceService) PayInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	// Per-invoice mutual exclusion around the read-check-write sequence.
	// A second payer blocks here and then fails the already-paid guard.
	mu := s.payLock(id)
	mu.Lock()
	defer mu.Unlock()

	var inv *invoice.Invoice
	err := s.txRunner.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoiceRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if err := inv.MarkPaid(types.Today()); err != nil {
			return err
		}

		if err := inv.Validate(); err != nil {
			return err
		}

		return s.invoiceRepo.Update(ctx, inv)
	})
	if err != nil {
		s.logger.Errorw("failed to pay invoice",
			"error", err,
			"invoice_id", id,
		)
		return nil, err
	}

	s.logger.Infow("invoice paid",
		"invoice_id", inv.ID,
		"client_id", inv.ClientID,
		"date_paiement", inv.DatePaiement,
	)

	s.cache.Set(ctx, cache.InvoiceKey(inv.ID), inv, cache.DefaultExpiration)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetClientTotal(ctx context.Context, clientID int64) (*dto.ClientTotalResponse, error) {
	invoices, err := s.invoiceRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// All invoices count toward the total, pending ones included
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Amount)
	}

	return &dto.ClientTotalResponse{
		ClientID:     clientID,
		TotalAmount:  total,
		InvoiceCount: len(invoices),
	}, nil
}

func (s *invoiceService) getInvoice(ctx context.Context, id int64) (*invoice.Invoice, error) {
	if cached, ok := s.cache.Get(ctx, cache.InvoiceKey(id)); ok {
		if inv, ok := cached.(*invoice.Invoice); ok {
			return inv, nil
		}
	}

	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cache.InvoiceKey(id), inv, cache.DefaultExpiration)
	return inv, nil
}

func (s *invoiceService) payLock(id int64) *sync.Mutex {
	mu, _ := s.payLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
