package dto

import (
	"github.com/shopspring/decimal"
	"github.com/techsolutions/billing-service/internal/domain/invoice"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/types"
	"github.com/techsolutions/billing-service/internal/validator"
)

// CreateInvoiceRequest represents the request payload for creating a new invoice
type CreateInvoiceRequest struct {
	// client_id is the identifier of the client this invoice is billed to
	ClientID int64 `json:"client_id" validate:"required,gt=0"`

	// amount is the invoice amount; must be strictly positive
	Amount decimal.Decimal `json:"amount" validate:"required"`

	// description is a short text describing what is billed
	Description string `json:"description" validate:"required,max=500"`

	// payment_method optionally records how the invoice will be settled
	PaymentMethod *types.PaymentMethod `json:"payment_method,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be greater than 0").
			WithHint("Amount must be greater than 0").
			WithReportableDetails(map[string]any{
				"amount": r.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if r.PaymentMethod != nil {
		if err := r.PaymentMethod.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ToInvoice converts the request into an invoice stub. Identifier,
// emission date and status are lifecycle concerns and are deliberately
// not assigned here.
func (r *CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ClientID:      r.ClientID,
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            int64                `json:"id"`
	ClientID      int64                `json:"client_id"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	DateEmission  types.Date           `json:"date_emission"`
	DatePaiement  *types.Date          `json:"date_paiement"`
	Status        types.InvoiceStatus  `json:"status"`
	PaymentMethod *types.PaymentMethod `json:"payment_method"`
}

// NewInvoiceResponse maps a domain invoice to its response shape,
// field for field
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		ClientID:      inv.ClientID,
		Amount:        inv.Amount,
		Description:   inv.Description,
		DateEmission:  inv.DateEmission,
		DatePaiement:  inv.DatePaiement,
		Status:        inv.Status,
		PaymentMethod: inv.PaymentMethod,
	}
}

// ListInvoicesResponse is the payload for per-client invoice listings
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// ClientTotalResponse is the per-client aggregation result. The total
// covers every invoice of the client regardless of status.
type ClientTotalResponse struct {
	ClientID     int64           `json:"client_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceCount int             `json:"invoice_count"`
}
