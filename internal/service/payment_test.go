package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *PaymentServiceSuite) TestCreateGatewayPayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodCard,
		TransactionID:   "txn-123",
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   "sub-1",
	})
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusPending, resp.PaymentStatus)
	s.NotEmpty(resp.PaymentReference)
	s.Require().NotNil(resp.TransactionID)
	s.Equal("txn-123", *resp.TransactionID)
	s.Nil(resp.PaymentProofURL)
}

func (s *PaymentServiceSuite) TestCreateManualPayment() {
	resp, err := s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodInstaPay,
		PaymentProofURL: "https://cdn.example.com/proof.png",
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   "sub-1",
	})
	s.Require().NoError(err)
	// Manual payments enter the admin verification queue.
	s.Equal(types.PaymentStatusPendingVerification, resp.PaymentStatus)
	s.Require().NotNil(resp.PaymentProofURL)
}

func (s *PaymentServiceSuite) TestCreatePaymentMissingEvidence() {
	_, err := s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodCard,
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   "sub-1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodVodafoneCash,
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   "sub-1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestCreatePaymentInvalidTargetType() {
	_, err := s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodCard,
		TransactionID:   "txn-123",
		PaymentableType: types.PaymentableType("GIFT_CARD"),
		PaymentableID:   "gift-1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestUpdatePaymentStatus() {
	created, err := s.service.CreatePayment(s.GetContext(), CreatePaymentInput{
		UserID:          "user-1",
		Amount:          decimal.NewFromInt(450),
		Currency:        types.CurrencyEGP,
		Method:          types.PaymentMethodInstaPay,
		PaymentProofURL: "https://cdn.example.com/proof.png",
		PaymentableType: types.PaymentableTypeSubscription,
		PaymentableID:   "sub-1",
	})
	s.Require().NoError(err)
	s.Nil(created.ProcessedAt)

	updated, err := s.service.UpdatePaymentStatus(s.GetContext(), created.ID, dto.UpdatePaymentStatusRequest{
		PaymentStatus: types.PaymentStatusSuccess,
	})
	s.Require().NoError(err)
	s.Equal(types.PaymentStatusSuccess, updated.PaymentStatus)
	s.NotNil(updated.ProcessedAt)

	// ProcessedAt is stamped once and kept on later transitions.
	firstProcessed := *updated.ProcessedAt
	again, err := s.service.UpdatePaymentStatus(s.GetContext(), created.ID, dto.UpdatePaymentStatusRequest{
		PaymentStatus: types.PaymentStatusSuccess,
	})
	s.Require().NoError(err)
	s.Require().NotNil(again.ProcessedAt)
	s.Equal(firstProcessed, *again.ProcessedAt)
}

func (s *PaymentServiceSuite) TestResolveTargetUnknownType() {
	_, err := s.service.ResolveTarget(s.GetContext(), &payment.Payment{
		PaymentableType: types.PaymentableType("GIFT_CARD"),
		PaymentableID:   "gift-1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestListPaymentsFiltersByUser() {
	for _, in := range []CreatePaymentInput{
		{UserID: "user-1", Amount: decimal.NewFromInt(100), Currency: types.CurrencyEGP, Method: types.PaymentMethodCard, TransactionID: "txn-1", PaymentableType: types.PaymentableTypeSubscription, PaymentableID: "sub-1"},
		{UserID: "user-2", Amount: decimal.NewFromInt(200), Currency: types.CurrencyEGP, Method: types.PaymentMethodCard, TransactionID: "txn-2", PaymentableType: types.PaymentableTypeOrder, PaymentableID: "ord-1"},
	} {
		_, err := s.service.CreatePayment(s.GetContext(), in)
		s.Require().NoError(err)
	}

	resp, err := s.service.ListPayments(s.GetContext(), &types.PaymentFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		UserID:      "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("user-1", resp.Items[0].UserID)
	s.Equal(1, resp.Total)
}
