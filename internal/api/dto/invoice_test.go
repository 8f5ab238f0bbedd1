package dto

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/types"
	"github.com/techsolutions/billing-service/internal/validator"
)

func init() {
	validator.NewValidator()
}

func TestCreateInvoiceRequestValidate(t *testing.T) {
	valid := CreateInvoiceRequest{
		ClientID:    1,
		Amount:      decimal.RequireFromString("49.90"),
		Description: "Licence renewal",
	}
	assert.NoError(t, valid.Validate())

	testCases := []struct {
		name string
		req  CreateInvoiceRequest
	}{
		{
			name: "missing client id",
			req: CreateInvoiceRequest{
				Amount:      decimal.RequireFromString("49.90"),
				Description: "Licence renewal",
			},
		},
		{
			name: "non positive amount",
			req: CreateInvoiceRequest{
				ClientID:    1,
				Amount:      decimal.Zero,
				Description: "Licence renewal",
			},
		},
		{
			name: "blank description",
			req: CreateInvoiceRequest{
				ClientID: 1,
				Amount:   decimal.RequireFromString("49.90"),
			},
		},
		{
			name: "oversized description",
			req: CreateInvoiceRequest{
				ClientID:    1,
				Amount:      decimal.RequireFromString("49.90"),
				Description: strings.Repeat("x", 501),
			},
		},
		{
			name: "invalid payment method",
			req: CreateInvoiceRequest{
				ClientID:      1,
				Amount:        decimal.RequireFromString("49.90"),
				Description:   "Licence renewal",
				PaymentMethod: lo.ToPtr(types.PaymentMethod("CHEQUE")),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			assert.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestToInvoice(t *testing.T) {
	req := CreateInvoiceRequest{
		ClientID:      9,
		Amount:        decimal.RequireFromString("120.50"),
		Description:   "Hardware",
		PaymentMethod: lo.ToPtr(types.PaymentMethodTransfer),
	}

	inv := req.ToInvoice()
	assert.Equal(t, int64(9), inv.ClientID)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "Hardware", inv.Description)
	assert.Equal(t, types.PaymentMethodTransfer, *inv.PaymentMethod)

	// lifecycle fields are left for the service to assign
	assert.Zero(t, inv.ID)
	assert.Empty(t, inv.Status)
	assert.True(t, inv.DateEmission.IsZero())
	assert.Nil(t, inv.DatePaiement)
}

func TestNewInvoiceResponse(t *testing.T) {
	req := CreateInvoiceRequest{
		ClientID:    9,
		Amount:      decimal.RequireFromString("120.50"),
		Description: "Hardware",
	}
	inv := req.ToInvoice()
	inv.ID = 3
	inv.Status = types.InvoiceStatusPending
	inv.DateEmission = types.Today()

	resp := NewInvoiceResponse(inv)
	assert.Equal(t, inv.ID, resp.ID)
	assert.Equal(t, inv.ClientID, resp.ClientID)
	assert.True(t, resp.Amount.Equal(inv.Amount))
	assert.Equal(t, inv.Description, resp.Description)
	assert.Equal(t, inv.Status, resp.Status)
	assert.True(t, resp.DateEmission.Equal(inv.DateEmission))
	assert.Nil(t, resp.DatePaiement)

	assert.Nil(t, NewInvoiceResponse(nil))
}
