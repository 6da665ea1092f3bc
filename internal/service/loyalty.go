package service

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/loyalty"
	"github.com/gymmawy/gymmawy/internal/types"
)

// LoyaltyService fronts the loyalty ledger. Every balance change goes through
// Credit or Debit so the denormalized balance and the ledger never diverge.
type LoyaltyService interface {
	// Credit awards points. Zero or negative points are a silent no-op.
	Credit(ctx context.Context, userID string, points int, source types.LoyaltySource, sourceID string) error
	// Debit spends points; insufficient balance is a validation error.
	Debit(ctx context.Context, userID string, points int, source types.LoyaltySource, sourceID string) error

	GetBalance(ctx context.Context, userID string) (*dto.LoyaltyBalanceResponse, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) (*dto.ListLoyaltyTransactionsResponse, error)
}

type loyaltyService struct {
	ServiceParams
}

func NewLoyaltyService(params ServiceParams) LoyaltyService {
	return &loyaltyService{ServiceParams: params}
}

func (s *loyaltyService) Credit(ctx context.Context, userID string, points int, source types.LoyaltySource, sourceID string) error {
	if points <= 0 {
		return nil
	}

	return s.LoyaltyRepo.Credit(ctx, &loyalty.Transaction{
		ID:        types.GenerateUUIDWithPrefix(types.IDPrefixLoyaltyTransaction),
		UserID:    userID,
		Points:    points,
		Type:      types.LoyaltyTransactionTypeEarned,
		Source:    source,
		SourceID:  sourceID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *loyaltyService) Debit(ctx context.Context, userID string, points int, source types.LoyaltySource, sourceID string) error {
	if points <= 0 {
		return nil
	}

	return s.LoyaltyRepo.Debit(ctx, &loyalty.Transaction{
		ID:        types.GenerateUUIDWithPrefix(types.IDPrefixLoyaltyTransaction),
		UserID:    userID,
		Points:    points,
		Type:      types.LoyaltyTransactionTypeRedeemed,
		Source:    source,
		SourceID:  sourceID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *loyaltyService) GetBalance(ctx context.Context, userID string) (*dto.LoyaltyBalanceResponse, error) {
	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.LoyaltyRepo.SumPointsByUser(ctx, userID, types.LoyaltyTransactionTypeEarned)
	if err != nil {
		return nil, err
	}
	redeemed, err := s.LoyaltyRepo.SumPointsByUser(ctx, userID, types.LoyaltyTransactionTypeRedeemed)
	if err != nil {
		return nil, err
	}

	return &dto.LoyaltyBalanceResponse{
		UserID:        userID,
		Balance:       u.LoyaltyPoints,
		TotalEarned:   earned,
		TotalRedeemed: redeemed,
	}, nil
}

func (s *loyaltyService) ListTransactions(ctx context.Context, userID string, limit, offset int) (*dto.ListLoyaltyTransactionsResponse, error) {
	if limit <= 0 {
		limit = types.FilterDefaultLimit
	}

	transactions, err := s.LoyaltyRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.LoyaltyRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.LoyaltyTransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = dto.NewLoyaltyTransactionResponse(t)
	}

	listResponse := types.NewListResponse(responses, int(total), limit, offset)
	return &listResponse, nil
}
