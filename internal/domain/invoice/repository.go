package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create persists a new invoice and assigns its identifier
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id int64) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// ListByClient retrieves all invoices for a client
	ListByClient(ctx context.Context, clientID int64) ([]*Invoice, error)
}
