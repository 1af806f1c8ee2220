package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	paymentdomain "github.com/Jguyatt/backend/internal/payment/domain"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed","data":{"object":{}}}`)
	timestamp := time.Now().Unix()

	header := buildStripeSignatureHeader(secret, payload, timestamp)
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", header)

	adapter := New(secret)
	if err := adapter.Verify(context.Background(), payload, reqHeader); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	reqHeader.Set("Stripe-Signature", buildStripeSignatureHeader("wrong", payload, timestamp))
	if err := adapter.Verify(context.Background(), payload, reqHeader); err == nil {
		t.Fatalf("expected invalid signature error")
	}
}

func TestVerifyRejectsMalformedHeader(t *testing.T) {
	adapter := New("whsec_test")
	payload := []byte(`{}`)

	tests := []string{
		"",
		"t=123",
		"v1=deadbeef",
		"garbage",
	}
	for _, header := range tests {
		reqHeader := http.Header{}
		if header != "" {
			reqHeader.Set("Stripe-Signature", header)
		}
		if err := adapter.Verify(context.Background(), payload, reqHeader); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestParseCheckoutSessionCompleted(t *testing.T) {
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_1",
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id":           "cs_test_1",
				"customer":     "cus_123",
				"amount_total": 24900,
				"customer_details": map[string]any{
					"email": "a@b.com",
					"name":  "Ada",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	adapter := New("whsec_test")
	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.Type != paymentdomain.EventCheckoutCompleted {
		t.Fatalf("expected checkout event, got %s", event.Type)
	}
	if event.Checkout == nil {
		t.Fatalf("expected checkout payload")
	}
	if event.Checkout.SessionID != "cs_test_1" {
		t.Fatalf("expected session id cs_test_1, got %s", event.Checkout.SessionID)
	}
	if event.Checkout.Email != "a@b.com" || event.Checkout.Name != "Ada" {
		t.Fatalf("unexpected customer details: %+v", event.Checkout)
	}
	if event.Checkout.AmountCents != 24900 {
		t.Fatalf("expected amount 24900, got %d", event.Checkout.AmountCents)
	}
	if event.Checkout.CustomerID != "cus_123" {
		t.Fatalf("expected customer id cus_123, got %s", event.Checkout.CustomerID)
	}
}

func TestParsePaymentIntentSucceeded(t *testing.T) {
	payload := []byte(`{"id":"evt_2","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)

	adapter := New("whsec_test")
	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.Type != paymentdomain.EventPaymentIntentSucceeded {
		t.Fatalf("expected payment_intent event, got %s", event.Type)
	}
	if event.Checkout != nil {
		t.Fatalf("payment_intent events carry no checkout payload")
	}
	if event.ObjectID != "pi_1" {
		t.Fatalf("expected object id pi_1, got %s", event.ObjectID)
	}
}

func TestParseIgnoresOtherEventTypes(t *testing.T) {
	payload := []byte(`{"id":"evt_3","type":"invoice.paid","data":{"object":{}}}`)

	adapter := New("whsec_test")
	if _, err := adapter.Parse(context.Background(), payload); err != paymentdomain.ErrEventIgnored {
		t.Fatalf("expected ErrEventIgnored, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	adapter := New("whsec_test")

	if _, err := adapter.Parse(context.Background(), []byte("not json")); err != paymentdomain.ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := adapter.Parse(context.Background(), []byte(`{"id":"evt"}`)); err != paymentdomain.ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func buildStripeSignatureHeader(secret string, payload []byte, timestamp int64) string {
	signedPayload := fmt.Sprintf("%d.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signedPayload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}
