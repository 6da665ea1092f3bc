package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type LoyaltyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LoyaltyService
}

func TestLoyaltyService(t *testing.T) {
	suite.Run(t, new(LoyaltyServiceSuite))
}

func (s *LoyaltyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLoyaltyService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *LoyaltyServiceSuite) TestCreditAndBalance() {
	seedUser(&s.BaseServiceTestSuite, "user-1")

	s.NoError(s.service.Credit(s.GetContext(), "user-1", 100, types.LoyaltySourceSubscription, "sub-1"))
	s.NoError(s.service.Credit(s.GetContext(), "user-1", 50, types.LoyaltySourceProgrammePurchase, "prog-1"))

	balance, err := s.service.GetBalance(s.GetContext(), "user-1")
	s.Require().NoError(err)
	s.Equal(150, balance.Balance)
	s.Equal(int64(150), balance.TotalEarned)
	s.Zero(balance.TotalRedeemed)
}

func (s *LoyaltyServiceSuite) TestDebit() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	s.NoError(s.service.Credit(s.GetContext(), "user-1", 100, types.LoyaltySourceSubscription, "sub-1"))

	s.NoError(s.service.Debit(s.GetContext(), "user-1", 30, types.LoyaltySourceAdminAdjustment, ""))

	balance, err := s.service.GetBalance(s.GetContext(), "user-1")
	s.Require().NoError(err)
	s.Equal(70, balance.Balance)
	s.Equal(int64(100), balance.TotalEarned)
	s.Equal(int64(30), balance.TotalRedeemed)
}

func (s *LoyaltyServiceSuite) TestDebitInsufficientBalance() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	s.NoError(s.service.Credit(s.GetContext(), "user-1", 20, types.LoyaltySourceSubscription, "sub-1"))

	err := s.service.Debit(s.GetContext(), "user-1", 50, types.LoyaltySourceAdminAdjustment, "")
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// The failed debit left neither the balance nor the ledger changed.
	balance, err := s.service.GetBalance(s.GetContext(), "user-1")
	s.Require().NoError(err)
	s.Equal(20, balance.Balance)
	s.Zero(balance.TotalRedeemed)
}

func (s *LoyaltyServiceSuite) TestZeroPointsIsNoOp() {
	seedUser(&s.BaseServiceTestSuite, "user-1")

	s.NoError(s.service.Credit(s.GetContext(), "user-1", 0, types.LoyaltySourceSubscription, "sub-1"))
	s.NoError(s.service.Debit(s.GetContext(), "user-1", -5, types.LoyaltySourceAdminAdjustment, ""))

	resp, err := s.service.ListTransactions(s.GetContext(), "user-1", 10, 0)
	s.Require().NoError(err)
	s.Empty(resp.Items)
}

func (s *LoyaltyServiceSuite) TestListTransactions() {
	seedUser(&s.BaseServiceTestSuite, "user-1")
	seedUser(&s.BaseServiceTestSuite, "user-2")

	s.NoError(s.service.Credit(s.GetContext(), "user-1", 100, types.LoyaltySourceSubscription, "sub-1"))
	s.NoError(s.service.Credit(s.GetContext(), "user-1", 50, types.LoyaltySourceProgrammePurchase, "prog-1"))
	s.NoError(s.service.Credit(s.GetContext(), "user-2", 10, types.LoyaltySourceSubscription, "sub-2"))

	resp, err := s.service.ListTransactions(s.GetContext(), "user-1", 10, 0)
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Total)
	// Newest entries come first.
	s.Equal("prog-1", resp.Items[0].SourceID)
	s.Equal("sub-1", resp.Items[1].SourceID)
}
