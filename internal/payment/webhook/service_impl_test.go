package webhook

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Jguyatt/backend/internal/payment/domain"
	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adapterStub struct {
	verifyErr error
	event     *domain.WebhookEvent
	parseErr  error
}

func (a *adapterStub) Verify(context.Context, []byte, http.Header) error {
	return a.verifyErr
}

func (a *adapterStub) Parse(context.Context, []byte) (*domain.WebhookEvent, error) {
	return a.event, a.parseErr
}

type purchaseStub struct {
	processed []purchasedomain.CheckoutEvent
	err       error
}

func (p *purchaseStub) Process(_ context.Context, event purchasedomain.CheckoutEvent) error {
	p.processed = append(p.processed, event)
	return p.err
}

func (p *purchaseStub) List(context.Context) (purchasedomain.Purchases, error) {
	return nil, nil
}

func (p *purchaseStub) MarkProcessed(context.Context, string) (purchasedomain.Purchase, error) {
	return purchasedomain.Purchase{}, nil
}

func newTestService(adapter domain.Adapter, purchases purchasedomain.Service) domain.Service {
	return New(Params{
		Log:         zap.NewNop(),
		Adapter:     adapter,
		PurchaseSvc: purchases,
		Registerer:  prometheus.NewRegistry(),
	})
}

func TestIngestRejectsBadSignature(t *testing.T) {
	purchases := &purchaseStub{}
	svc := newTestService(&adapterStub{verifyErr: domain.ErrInvalidSignature}, purchases)

	err := svc.Ingest(context.Background(), []byte("{}"), http.Header{})
	require.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.Empty(t, purchases.processed)
}

func TestIngestDispatchesCheckout(t *testing.T) {
	purchases := &purchaseStub{}
	svc := newTestService(&adapterStub{event: &domain.WebhookEvent{
		Type:     domain.EventCheckoutCompleted,
		ObjectID: "cs_1",
		Checkout: &purchasedomain.CheckoutEvent{SessionID: "cs_1", AmountCents: 24900},
	}}, purchases)

	require.NoError(t, svc.Ingest(context.Background(), []byte("{}"), http.Header{}))
	require.Len(t, purchases.processed, 1)
	assert.Equal(t, "cs_1", purchases.processed[0].SessionID)
}

func TestIngestSwallowsProcessingFailure(t *testing.T) {
	purchases := &purchaseStub{err: errors.New("disk full")}
	svc := newTestService(&adapterStub{event: &domain.WebhookEvent{
		Type:     domain.EventCheckoutCompleted,
		Checkout: &purchasedomain.CheckoutEvent{SessionID: "cs_1"},
	}}, purchases)

	// The provider retries on non-2xx and a retry would not fix a storage
	// failure, so the event must still be acknowledged.
	require.NoError(t, svc.Ingest(context.Background(), []byte("{}"), http.Header{}))
	assert.Len(t, purchases.processed, 1)
}

func TestIngestSwallowsIgnoredAndUnparseableEvents(t *testing.T) {
	purchases := &purchaseStub{}

	svc := newTestService(&adapterStub{parseErr: domain.ErrEventIgnored}, purchases)
	require.NoError(t, svc.Ingest(context.Background(), []byte("{}"), http.Header{}))

	svc = newTestService(&adapterStub{parseErr: domain.ErrInvalidPayload}, purchases)
	require.NoError(t, svc.Ingest(context.Background(), []byte("{}"), http.Header{}))

	assert.Empty(t, purchases.processed)
}

func TestIngestLogsPaymentIntent(t *testing.T) {
	purchases := &purchaseStub{}
	svc := newTestService(&adapterStub{event: &domain.WebhookEvent{
		Type:     domain.EventPaymentIntentSucceeded,
		ObjectID: "pi_1",
	}}, purchases)

	require.NoError(t, svc.Ingest(context.Background(), []byte("{}"), http.Header{}))
	assert.Empty(t, purchases.processed)
}
