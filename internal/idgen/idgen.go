// Package idgen generates the human-readable numbers attached to purchases
// (subscription numbers, payment references, order numbers). Candidates are
// random, so uniqueness is enforced by retrying against the persistence layer
// until a non-colliding candidate is found.
package idgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/teris-io/shortid"
)

// maxAttempts bounds the retry loop; with timestamped candidates a collision
// beyond the first attempt is already vanishingly unlikely.
const maxAttempts = 10

// Generator produces one candidate identifier.
type Generator func() string

// ExistsFunc reports whether a candidate already exists.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// GenerateUnique retries generate until exists reports a free candidate.
func GenerateUnique(ctx context.Context, generate Generator, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := generate()

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ierr.NewErrorf("could not generate a unique identifier after %d attempts", maxAttempts).
		WithHint("Please retry the request").
		Mark(ierr.ErrSystem)
}

func numbered(prefix string) string {
	suffix, err := shortid.Generate()
	if err != nil {
		// shortid only fails on a broken entropy source; fall back to the
		// timestamp alone and let the uniqueness check arbitrate.
		suffix = fmt.Sprintf("%06d", time.Now().UTC().Nanosecond())
	}
	suffix = strings.ToUpper(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, suffix))
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UTC().UnixMilli(), suffix)
}

// SubscriptionNumber generates a SUB-<timestamp>-<random> candidate.
func SubscriptionNumber() string {
	return numbered("SUB")
}

// PaymentReference generates a PAY-<timestamp>-<random> candidate.
func PaymentReference() string {
	return numbered("PAY")
}

// OrderNumber generates an ORD-<timestamp>-<random> candidate.
func OrderNumber() string {
	return numbered("ORD")
}

// PurchaseNumber generates a PROG-<timestamp>-<random> candidate.
func PurchaseNumber() string {
	return numbered("PROG")
}
