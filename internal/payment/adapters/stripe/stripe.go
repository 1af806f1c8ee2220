package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	paymentdomain "github.com/Jguyatt/backend/internal/payment/domain"
	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
)

type Adapter struct {
	webhookSecret string
}

func New(webhookSecret string) *Adapter {
	return &Adapter{webhookSecret: webhookSecret}
}

// Verify checks the Stripe-Signature header (t/v1 scheme) against the
// shared webhook secret.
func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	sigHeader := strings.TrimSpace(headers.Get("Stripe-Signature"))
	if sigHeader == "" {
		return paymentdomain.ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return paymentdomain.ErrInvalidSignature
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return paymentdomain.ErrInvalidSignature
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.WebhookEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}
	eventType := strings.TrimSpace(event.Type)
	if eventType == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	switch eventType {
	case paymentdomain.EventCheckoutCompleted:
		return a.parseCheckoutSession(event)
	case paymentdomain.EventPaymentIntentSucceeded:
		return a.parseObjectID(event)
	default:
		return nil, paymentdomain.ErrEventIgnored
	}
}

type stripeEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data stripeEventData `json:"data"`
}

type stripeEventData struct {
	Object json.RawMessage `json:"object"`
}

type stripeCheckoutSession struct {
	ID              string                `json:"id"`
	Customer        string                `json:"customer"`
	AmountTotal     int64                 `json:"amount_total"`
	CustomerDetails stripeCustomerDetails `json:"customer_details"`
}

type stripeCustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *Adapter) parseCheckoutSession(event stripeEvent) (*paymentdomain.WebhookEvent, error) {
	var session stripeCheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(session.ID) == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	return &paymentdomain.WebhookEvent{
		ID:       event.ID,
		Type:     event.Type,
		ObjectID: session.ID,
		Checkout: &purchasedomain.CheckoutEvent{
			SessionID:   session.ID,
			CustomerID:  session.Customer,
			Email:       strings.TrimSpace(session.CustomerDetails.Email),
			Name:        strings.TrimSpace(session.CustomerDetails.Name),
			AmountCents: session.AmountTotal,
		},
	}, nil
}

func (a *Adapter) parseObjectID(event stripeEvent) (*paymentdomain.WebhookEvent, error) {
	var object struct {
		ID string `json:"id"`
	}
	if len(event.Data.Object) > 0 {
		if err := json.Unmarshal(event.Data.Object, &object); err != nil {
			return nil, paymentdomain.ErrInvalidPayload
		}
	}
	return &paymentdomain.WebhookEvent{
		ID:       event.ID,
		Type:     event.Type,
		ObjectID: object.ID,
	}, nil
}

func parseSignatureHeader(header string) (string, []string, error) {
	parts := strings.Split(header, ",")
	var timestamp string
	signatures := []string{}
	for _, part := range parts {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])
		if key == "t" {
			timestamp = value
		}
		if key == "v1" {
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("invalid_signature")
	}
	return timestamp, signatures, nil
}
