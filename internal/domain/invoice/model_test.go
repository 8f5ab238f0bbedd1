package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/types"
)

func validInvoice() *Invoice {
	return &Invoice{
		ID:           1,
		ClientID:     10,
		Amount:       decimal.RequireFromString("250.00"),
		Description:  "Support contract",
		DateEmission: types.Today(),
		Status:       types.InvoiceStatusPending,
	}
}

func TestInvoiceValidate(t *testing.T) {
	assert.NoError(t, validInvoice().Validate())

	testCases := []struct {
		name   string
		mutate func(*Invoice)
	}{
		{"missing client id", func(i *Invoice) { i.ClientID = 0 }},
		{"zero amount", func(i *Invoice) { i.Amount = decimal.Zero }},
		{"negative amount", func(i *Invoice) { i.Amount = decimal.RequireFromString("-1") }},
		{"empty description", func(i *Invoice) { i.Description = "" }},
		{"description too long", func(i *Invoice) { i.Description = strings.Repeat("a", MaxDescriptionLength+1) }},
		{"invalid status", func(i *Invoice) { i.Status = types.InvoiceStatus("VOID") }},
		{"invalid payment method", func(i *Invoice) { i.PaymentMethod = lo.ToPtr(types.PaymentMethod("GOLD")) }},
		{"paid without payment date", func(i *Invoice) { i.Status = types.InvoiceStatusPaid }},
		{"pending with payment date", func(i *Invoice) { i.DatePaiement = lo.ToPtr(types.Today()) }},
		{"payment before emission", func(i *Invoice) {
			i.Status = types.InvoiceStatusPaid
			i.DatePaiement = lo.ToPtr(types.NewDate(time.Now().UTC().AddDate(0, 0, -1)))
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInvoice()
			tc.mutate(inv)
			err := inv.Validate()
			assert.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestDescriptionLengthCountsRunes(t *testing.T) {
	// 500 two-byte characters exceed 500 bytes but stay within the
	// character limit
	inv := validInvoice()
	inv.Description = strings.Repeat("é", MaxDescriptionLength)
	assert.NoError(t, inv.Validate())

	inv.Description = strings.Repeat("é", MaxDescriptionLength+1)
	err := inv.Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestMarkPaid(t *testing.T) {
	inv := validInvoice()
	paidAt := types.Today()

	assert.NoError(t, inv.MarkPaid(paidAt))
	assert.True(t, inv.IsPaid())
	assert.Equal(t, types.InvoiceStatusPaid, inv.Status)
	assert.NotNil(t, inv.DatePaiement)
	assert.True(t, inv.DatePaiement.Equal(paidAt))
	assert.NoError(t, inv.Validate())

	err := inv.MarkPaid(types.Today())
	assert.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
	assert.True(t, inv.DatePaiement.Equal(paidAt))
}
