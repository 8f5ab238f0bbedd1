package testutil

import (
	"context"
	"sync/atomic"

	"github.com/techsolutions/billing-service/internal/domain/invoice"
	ierr "github.com/techsolutions/billing-service/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository with the same
// contract as the postgres repository: identifiers are assigned by the
// store, sequentially, on Create.
type InMemoryInvoiceStore struct {
	*InMemoryStore[int64, *invoice.Invoice]
	lastID atomic.Int64
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[int64, *invoice.Invoice](),
	}
}

// InMemoryTxRunner runs the function directly; the in-memory stores
// have no transaction support to speak of
type InMemoryTxRunner struct{}

func (InMemoryTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// copyInvoice returns a deep copy so callers cannot mutate stored state
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	copied := *inv
	if inv.DatePaiement != nil {
		dp := *inv.DatePaiement
		copied.DatePaiement = &dp
	}
	if inv.PaymentMethod != nil {
		pm := *inv.PaymentMethod
		copied.PaymentMethod = &pm
	}
	return &copied
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	inv.ID = s.lastID.Add(1)
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice not found with id: %d", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice not found with id: %d", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryInvoiceStore) ListByClient(ctx context.Context, clientID int64) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, clientID, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, len(items))
	for i, inv := range items {
		result[i] = copyInvoice(inv)
	}
	return result, nil
}

// invoiceFilterFn matches invoices on client id
func invoiceFilterFn(_ context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv == nil {
		return false
	}

	clientID, ok := filter.(int64)
	if !ok {
		return true
	}

	return inv.ClientID == clientID
}

// invoiceSortFn keeps listings in stable id order
func invoiceSortFn(i, j *invoice.Invoice) bool {
	if i == nil || j == nil {
		return false
	}
	return i.ID < j.ID
}
