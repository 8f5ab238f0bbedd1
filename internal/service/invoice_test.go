package service

import (
	"strings"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/techsolutions/billing-service/internal/api/dto"
	ierr "github.com/techsolutions/billing-service/internal/errors"
	"github.com/techsolutions/billing-service/internal/testutil"
	"github.com/techsolutions/billing-service/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(
		s.GetStores().InvoiceRepo,
		s.GetCache(),
		testutil.InMemoryTxRunner{},
		s.GetLogger(),
	)
}

func (s *InvoiceServiceSuite) createInvoice(clientID int64, amount string) *dto.InvoiceResponse {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID:    clientID,
		Amount:      decimal.RequireFromString(amount),
		Description: "Consulting services",
	})
	s.NoError(err)
	s.NotNil(resp)
	return resp
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientID:      42,
		Amount:        decimal.RequireFromString("199.99"),
		Description:   "Monthly subscription",
		PaymentMethod: lo.ToPtr(types.PaymentMethodCard),
	})
	s.NoError(err)
	s.NotNil(resp)

	s.NotZero(resp.ID)
	s.Equal(int64(42), resp.ClientID)
	s.True(resp.Amount.Equal(decimal.RequireFromString("199.99")))
	s.Equal("Monthly subscription", resp.Description)
	s.Equal(types.InvoiceStatusPending, resp.Status)
	s.True(resp.DateEmission.Equal(types.Today()))
	s.Nil(resp.DatePaiement)
	s.NotNil(resp.PaymentMethod)
	s.Equal(types.PaymentMethodCard, *resp.PaymentMethod)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAssignsSequentialIDs() {
	first := s.createInvoice(1, "10.00")
	second := s.createInvoice(1, "20.00")
	s.Equal(first.ID+1, second.ID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceValidation() {
	testCases := []struct {
		name string
		req  dto.CreateInvoiceRequest
	}{
		{
			name: "missing client id",
			req: dto.CreateInvoiceRequest{
				Amount:      decimal.RequireFromString("10.00"),
				Description: "Consulting",
			},
		},
		{
			name: "zero amount",
			req: dto.CreateInvoiceRequest{
				ClientID:    1,
				Amount:      decimal.Zero,
				Description: "Consulting",
			},
		},
		{
			name: "negative amount",
			req: dto.CreateInvoiceRequest{
				ClientID:    1,
				Amount:      decimal.RequireFromString("-5.00"),
				Description: "Consulting",
			},
		},
		{
			name: "empty description",
			req: dto.CreateInvoiceRequest{
				ClientID: 1,
				Amount:   decimal.RequireFromString("10.00"),
			},
		},
		{
			name: "description too long",
			req: dto.CreateInvoiceRequest{
				ClientID:    1,
				Amount:      decimal.RequireFromString("10.00"),
				Description: strings.Repeat("a", 501),
			},
		},
		{
			name: "unknown payment method",
			req: dto.CreateInvoiceRequest{
				ClientID:      1,
				Amount:        decimal.RequireFromString("10.00"),
				Description:   "Consulting",
				PaymentMethod: lo.ToPtr(types.PaymentMethod("BARTER")),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateInvoice(s.GetContext(), tc.req)
			s.Error(err)
			s.Nil(resp)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	created := s.createInvoice(7, "55.50")

	resp, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(created.ID, resp.ID)
	s.Equal(int64(7), resp.ClientID)
	s.True(resp.Amount.Equal(decimal.RequireFromString("55.50")))
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	resp, err := s.service.GetInvoice(s.GetContext(), 9999)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesByClient() {
	s.createInvoice(1, "100.00")
	s.createInvoice(2, "200.00")
	s.createInvoice(1, "300.00")

	resp, err := s.service.ListInvoicesByClient(s.GetContext(), 1)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(2, resp.Total)
	s.Len(resp.Items, 2)
	for _, item := range resp.Items {
		s.Equal(int64(1), item.ClientID)
	}
	// listings come back in creation order
	s.Less(resp.Items[0].ID, resp.Items[1].ID)
}

func (s *InvoiceServiceSuite) TestListInvoicesByClientEmpty() {
	resp, err := s.service.ListInvoicesByClient(s.GetContext(), 123)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(0, resp.Total)
	s.Empty(resp.Items)
}

func (s *InvoiceServiceSuite) TestPayInvoice() {
	created := s.createInvoice(3, "75.00")

	resp, err := s.service.PayInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.NotNil(resp.DatePaiement)
	s.False(resp.DatePaiement.Before(resp.DateEmission))

	// the paid state must be visible on subsequent reads
	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, got.Status)
	s.NotNil(got.DatePaiement)
}

func (s *InvoiceServiceSuite) TestPayInvoiceAlreadyPaid() {
	created := s.createInvoice(3, "75.00")

	_, err := s.service.PayInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	resp, err := s.service.PayInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsInvalidOperation(err))

	// state is unchanged after the rejected second payment
	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, got.Status)
}

func (s *InvoiceServiceSuite) TestPayInvoiceConcurrentPayers() {
	created := s.createInvoice(8, "60.00")

	// exactly one of the racing payers may win; the rest must hit the
	// already-paid guard
	const payers = 16
	errs := make(chan error, payers)
	var wg sync.WaitGroup
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.PayInvoice(s.GetContext(), created.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	paid := 0
	conflicts := 0
	for err := range errs {
		switch {
		case err == nil:
			paid++
		case ierr.IsInvalidOperation(err):
			conflicts++
		default:
			s.FailNowf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, paid)
	s.Equal(payers-1, conflicts)

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, got.Status)
	s.NotNil(got.DatePaiement)
}

func (s *InvoiceServiceSuite) TestPayInvoiceNotFound() {
	resp, err := s.service.PayInvoice(s.GetContext(), 9999)
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetClientTotal() {
	s.createInvoice(5, "1000.00")
	second := s.createInvoice(5, "500.00")
	s.createInvoice(6, "999.00")

	// pending and paid invoices both count toward the total
	_, err := s.service.PayInvoice(s.GetContext(), second.ID)
	s.NoError(err)

	resp, err := s.service.GetClientTotal(s.GetContext(), 5)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(int64(5), resp.ClientID)
	s.True(resp.TotalAmount.Equal(decimal.RequireFromString("1500.00")))
	s.Equal(2, resp.InvoiceCount)
}

func (s *InvoiceServiceSuite) TestGetClientTotalEmpty() {
	resp, err := s.service.GetClientTotal(s.GetContext(), 77)
	s.NoError(err)
	s.NotNil(resp)
	s.True(resp.TotalAmount.IsZero())
	s.Equal(0, resp.InvoiceCount)
}
