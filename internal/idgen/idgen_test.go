package idgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueFirstCandidate(t *testing.T) {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return false, nil
	}

	number, err := GenerateUnique(context.Background(), SubscriptionNumber, exists)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "SUB-"))
}

func TestGenerateUniqueRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, candidate string) (bool, error) {
		calls++
		return calls <= 3, nil
	}

	_, err := GenerateUnique(context.Background(), PaymentReference, exists)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestGenerateUniqueGivesUp(t *testing.T) {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return true, nil
	}

	_, err := GenerateUnique(context.Background(), OrderNumber, exists)
	assert.Error(t, err)
}

func TestNumberPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(SubscriptionNumber(), "SUB-"))
	assert.True(t, strings.HasPrefix(PaymentReference(), "PAY-"))
	assert.True(t, strings.HasPrefix(OrderNumber(), "ORD-"))
	assert.True(t, strings.HasPrefix(PurchaseNumber(), "PROG-"))
}
