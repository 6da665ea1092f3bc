package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID prefixes keep entity ids self-describing in logs and API payloads.
const (
	IDPrefixUser               = "user"
	IDPrefixPlan               = "plan"
	IDPrefixPlanPrice          = "price"
	IDPrefixCoupon             = "coupon"
	IDPrefixCouponRedemption   = "credemption"
	IDPrefixSubscription       = "subs"
	IDPrefixPayment            = "pay"
	IDPrefixLoyaltyTransaction = "loyalty"
	IDPrefixProduct            = "prod"
	IDPrefixOrder              = "order"
	IDPrefixOrderItem          = "oitem"
	IDPrefixProgramme          = "prog"
	IDPrefixProgrammePurchase  = "ppurchase"
	IDPrefixLead               = "lead"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a lowercase ULID prefixed in the form
// "prefix_01h...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
