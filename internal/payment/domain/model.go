package domain

import (
	"context"
	"errors"
	"net/http"

	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
)

const (
	EventCheckoutCompleted      = "checkout.session.completed"
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
)

// WebhookEvent is a verified, parsed provider event. Checkout is non-nil
// only for checkout.session.completed.
type WebhookEvent struct {
	ID       string
	Type     string
	ObjectID string
	Checkout *purchasedomain.CheckoutEvent
}

// Adapter verifies and parses one payment provider's webhook payloads.
type Adapter interface {
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*WebhookEvent, error)
}

// Service ingests inbound webhook deliveries.
type Service interface {
	Ingest(ctx context.Context, payload []byte, headers http.Header) error
}

var (
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrInvalidEvent     = errors.New("invalid_event")
	ErrEventIgnored     = errors.New("event_ignored")
)
