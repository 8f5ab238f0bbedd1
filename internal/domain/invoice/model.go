package invoice

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/types"
)

// MaxDescriptionLength is the upper bound on invoice descriptions
const MaxDescriptionLength = 500

// Invoice represents the invoice domain model. The identifier is
// assigned by the store on creation and is immutable afterwards, as are
// the client id, amount, description and emission date.
type Invoice struct {
	ID            int64                `db:"id" json:"id"`
	ClientID      int64                `db:"client_id" json:"client_id"`
	Amount        decimal.Decimal      `db:"amount" json:"amount"`
	Description   string               `db:"description" json:"description"`
	DateEmission  types.Date           `db:"date_emission" json:"date_emission"`
	DatePaiement  *types.Date          `db:"date_paiement" json:"date_paiement,omitempty"`
	Status        types.InvoiceStatus  `db:"status" json:"status"`
	PaymentMethod *types.PaymentMethod `db:"payment_method" json:"payment_method,omitempty"`
}

// Validate checks the domain invariants of the invoice
func (i *Invoice) Validate() error {
	if i.ClientID <= 0 {
		return ierr.NewError("client_id is required").
			WithHint("Client ID is required").
			Mark(ierr.ErrValidation)
	}

	if !i.Amount.IsPositive() {
		return ierr.NewError("amount must be greater than 0").
			WithHint("Amount must be greater than 0").
			WithReportableDetails(map[string]any{
				"amount": i.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if i.Description == "" {
		return ierr.NewError("description is required").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}

	// character count, not bytes, so multibyte descriptions get the
	// same verdict as the struct-tag validation
	if utf8.RuneCountInString(i.Description) > MaxDescriptionLength {
		return ierr.NewError("description too long").
			WithHintf("Description must not exceed %d characters", MaxDescriptionLength).
			WithReportableDetails(map[string]any{
				"length": utf8.RuneCountInString(i.Description),
			}).
			Mark(ierr.ErrValidation)
	}

	if err := i.Status.Validate(); err != nil {
		return err
	}

	if i.PaymentMethod != nil {
		if err := i.PaymentMethod.Validate(); err != nil {
			return err
		}
	}

	// status PAID iff payment date present
	if (i.Status == types.InvoiceStatusPaid) != (i.DatePaiement != nil) {
		return ierr.NewError("status and payment date are inconsistent").
			WithHint("A paid invoice must carry a payment date and a pending one must not").
			Mark(ierr.ErrValidation)
	}

	if i.DatePaiement != nil && i.DatePaiement.Before(i.DateEmission) {
		return ierr.NewError("payment date precedes emission date").
			WithHint("Payment date must not be before the emission date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// IsPaid reports whether the invoice has reached its terminal state
func (i *Invoice) IsPaid() bool {
	return i.Status == types.InvoiceStatusPaid
}

// MarkPaid performs the single allowed status transition
// PENDING -> PAID, setting the payment date. A second call fails; the
// transition is deliberately not idempotent.
func (i *Invoice) MarkPaid(paidAt types.Date) error {
	if i.IsPaid() {
		return ierr.NewError("invoice is already paid").
			WithHint("Invoice is already paid").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	i.Status = types.InvoiceStatusPaid
	i.DatePaiement = &paidAt
	return nil
}
