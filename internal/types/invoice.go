package types

import (
	"github.com/samber/lo"
	ierr "github.com/techsolutions/billing-service/internal/errors"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
// An invoice starts PENDING and moves to PAID exactly once; there is no
// reverse transition.
type InvoiceStatus string

const (
	// InvoiceStatusPending indicates the invoice has been issued but not paid
	InvoiceStatusPending InvoiceStatus = "PENDING"
	// InvoiceStatusPaid indicates the invoice has been paid in full
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod is how an invoice was settled. The set is open to
// extension; the column stays a plain varchar.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCash     PaymentMethod = "CASH"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodCard,
		PaymentMethodTransfer,
		PaymentMethodCash,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Please provide a valid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
