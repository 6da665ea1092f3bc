package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gymmawy/gymmawy/internal/types"
)

// TestApplyDiscount_Percentage tests that percentage discounts are rounded
// at source before the final price is derived
func TestApplyDiscount_Percentage(t *testing.T) {
	tests := []struct {
		name             string
		price            string
		percentageOff    string
		expectedDiscount string
		expectedFinal    string
	}{
		{
			name:             "Simple_10Percent",
			price:            "500.00",
			percentageOff:    "10",
			expectedDiscount: "50.00",
			expectedFinal:    "450.00",
		},
		{
			name:             "Fractional_15.5Percent",
			price:            "10.00",
			percentageOff:    "15.5",
			expectedDiscount: "1.55",
			expectedFinal:    "8.45",
		},
		{
			name:             "Rounding_33.333Percent",
			price:            "10.00",
			percentageOff:    "33.333",
			expectedDiscount: "3.33",
			expectedFinal:    "6.67",
		},
		{
			name:             "Small_Percentage",
			price:            "100.00",
			percentageOff:    "0.5",
			expectedDiscount: "0.50",
			expectedFinal:    "99.50",
		},
		{
			name:             "Full_Discount",
			price:            "249.99",
			percentageOff:    "100",
			expectedDiscount: "249.99",
			expectedFinal:    "0.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Coupon{
				DiscountType:  types.CouponDiscountTypePercentage,
				DiscountValue: decimal.RequireFromString(tc.percentageOff),
			}

			result := c.ApplyDiscount(decimal.RequireFromString(tc.price))

			assert.True(t, result.Discount.Equal(decimal.RequireFromString(tc.expectedDiscount)),
				"discount: got %s, want %s", result.Discount, tc.expectedDiscount)
			assert.True(t, result.FinalPrice.Equal(decimal.RequireFromString(tc.expectedFinal)),
				"final price: got %s, want %s", result.FinalPrice, tc.expectedFinal)
		})
	}
}

// TestApplyDiscount_Fixed tests that fixed discounts are clamped so the
// final price never drops below zero
func TestApplyDiscount_Fixed(t *testing.T) {
	tests := []struct {
		name             string
		price            string
		discountValue    string
		expectedDiscount string
		expectedFinal    string
	}{
		{
			name:             "Partial_Discount",
			price:            "500.00",
			discountValue:    "100.00",
			expectedDiscount: "100.00",
			expectedFinal:    "400.00",
		},
		{
			name:             "Exceeds_Price",
			price:            "50.00",
			discountValue:    "75.00",
			expectedDiscount: "50.00",
			expectedFinal:    "0.00",
		},
		{
			name:             "Exact_Price",
			price:            "75.00",
			discountValue:    "75.00",
			expectedDiscount: "75.00",
			expectedFinal:    "0.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Coupon{
				DiscountType:  types.CouponDiscountTypeFixed,
				DiscountValue: decimal.RequireFromString(tc.discountValue),
			}

			result := c.ApplyDiscount(decimal.RequireFromString(tc.price))

			assert.True(t, result.Discount.Equal(decimal.RequireFromString(tc.expectedDiscount)),
				"discount: got %s, want %s", result.Discount, tc.expectedDiscount)
			assert.True(t, result.FinalPrice.Equal(decimal.RequireFromString(tc.expectedFinal)),
				"final price: got %s, want %s", result.FinalPrice, tc.expectedFinal)
		})
	}
}

func TestCouponLifecycleChecks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("not expired without expiration date", func(t *testing.T) {
		c := &Coupon{}
		assert.False(t, c.IsExpired(now))
	})

	t.Run("expired when past expiration", func(t *testing.T) {
		past := now.Add(-time.Hour)
		c := &Coupon{ExpirationDate: &past}
		assert.True(t, c.IsExpired(now))
	})

	t.Run("not expired when before expiration", func(t *testing.T) {
		future := now.Add(time.Hour)
		c := &Coupon{ExpirationDate: &future}
		assert.False(t, c.IsExpired(now))
	})

	t.Run("uncapped coupon never exhausts", func(t *testing.T) {
		c := &Coupon{MaxRedemptions: 0, TotalRedemptions: 1000}
		assert.False(t, c.IsExhausted())
	})

	t.Run("exhausted at the cap", func(t *testing.T) {
		c := &Coupon{MaxRedemptions: 5, TotalRedemptions: 5}
		assert.True(t, c.IsExhausted())
	})

	t.Run("not exhausted below the cap", func(t *testing.T) {
		c := &Coupon{MaxRedemptions: 5, TotalRedemptions: 4}
		assert.False(t, c.IsExhausted())
	})
}
