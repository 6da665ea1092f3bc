package notification

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/gymmawy/gymmawy/internal/config"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/logger"
)

// Event names emitted by the dispatcher.
const (
	EventSubscriptionCreated  = "subscription.created"
	EventSubscriptionApproved = "subscription.approved"
	EventSubscriptionRejected = "subscription.rejected"
	EventOrderCreated         = "order.created"
	EventPurchaseCreated      = "purchase.created"
	EventLeadCreated          = "lead.created"
)

// Dispatcher delivers lifecycle events to the notification channel. Delivery
// is best effort: callers must never fail a business operation because a
// notification did not go out.
type Dispatcher interface {
	SubscriptionCreated(ctx context.Context, sub *subscription.Subscription)
	SubscriptionApproved(ctx context.Context, sub *subscription.Subscription)
	SubscriptionRejected(ctx context.Context, sub *subscription.Subscription)
	Notify(ctx context.Context, event string, payload map[string]interface{})
}

type dispatcher struct {
	cfg *config.Configuration
	log *logger.Logger
}

// NewDispatcher creates the default dispatcher, which records events in the
// structured log with retry semantics for the delivery step.
func NewDispatcher(cfg *config.Configuration, log *logger.Logger) Dispatcher {
	return &dispatcher{cfg: cfg, log: log}
}

func (d *dispatcher) SubscriptionCreated(ctx context.Context, sub *subscription.Subscription) {
	d.Notify(ctx, EventSubscriptionCreated, map[string]interface{}{
		"subscription_id":     sub.ID,
		"subscription_number": sub.SubscriptionNumber,
		"user_id":             sub.UserID,
		"plan_id":             sub.PlanID,
		"payment_method":      sub.PaymentMethod,
	})
}

func (d *dispatcher) SubscriptionApproved(ctx context.Context, sub *subscription.Subscription) {
	d.Notify(ctx, EventSubscriptionApproved, map[string]interface{}{
		"subscription_id":     sub.ID,
		"subscription_number": sub.SubscriptionNumber,
		"user_id":             sub.UserID,
		"start_date":          sub.StartDate,
		"end_date":            sub.EndDate,
	})
}

func (d *dispatcher) SubscriptionRejected(ctx context.Context, sub *subscription.Subscription) {
	payload := map[string]interface{}{
		"subscription_id":     sub.ID,
		"subscription_number": sub.SubscriptionNumber,
		"user_id":             sub.UserID,
	}
	if sub.RejectionReason != nil {
		payload["reason"] = *sub.RejectionReason
	}
	d.Notify(ctx, EventSubscriptionRejected, payload)
}

func (d *dispatcher) Notify(ctx context.Context, event string, payload map[string]interface{}) {
	operation := func() error {
		return d.deliver(ctx, event, payload)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(), 3), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		d.log.Errorw("notification delivery failed",
			"event", event,
			"error", err)
	}
}

// deliver performs a single delivery attempt. The default channel is the
// structured log; a mail or push provider would slot in here.
func (d *dispatcher) deliver(_ context.Context, event string, payload map[string]interface{}) error {
	fields := make([]interface{}, 0, len(payload)*2+2)
	fields = append(fields, "event", event)
	for k, v := range payload {
		fields = append(fields, k, v)
	}
	d.log.Infow("notification dispatched", fields...)
	return nil
}

// NoopDispatcher discards all events. Used in tests.
type NoopDispatcher struct{}

func NewNoopDispatcher() Dispatcher {
	return &NoopDispatcher{}
}

func (NoopDispatcher) SubscriptionCreated(context.Context, *subscription.Subscription)  {}
func (NoopDispatcher) SubscriptionApproved(context.Context, *subscription.Subscription) {}
func (NoopDispatcher) SubscriptionRejected(context.Context, *subscription.Subscription) {}
func (NoopDispatcher) Notify(context.Context, string, map[string]interface{})           {}
