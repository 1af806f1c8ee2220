package domain

import (
	"context"
	"errors"
)

// CheckoutEvent is the slice of a completed checkout session the processor
// needs. Email and Name may be absent; AmountCents is the provider's
// minor-unit total.
type CheckoutEvent struct {
	SessionID   string
	CustomerID  string
	Email       string
	Name        string
	AmountCents int64
}

// Purchase is one entry in the raw purchase log the admin dashboard works
// through.
type Purchase struct {
	ID              string  `json:"id"`
	StripeSessionID string  `json:"stripeSessionId"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerName    string  `json:"customerName"`
	Amount          float64 `json:"amount"`
	Package         string  `json:"package"`
	CreatedAt       string  `json:"createdAt"`
	Processed       bool    `json:"processed"`
}

type Purchases []Purchase

type Service interface {
	Process(ctx context.Context, event CheckoutEvent) error
	List(ctx context.Context) (Purchases, error)
	MarkProcessed(ctx context.Context, sessionID string) (Purchase, error)
}

var (
	ErrPurchaseNotFound = errors.New("purchase_not_found")
	ErrStorageWrite     = errors.New("storage_write_failed")
)
