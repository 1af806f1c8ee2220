package webhook

import (
	"context"
	"errors"
	"net/http"

	"github.com/Jguyatt/backend/internal/payment/domain"
	purchasedomain "github.com/Jguyatt/backend/internal/purchase/domain"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Adapter     domain.Adapter
	PurchaseSvc purchasedomain.Service
	Registerer  prometheus.Registerer
}

type Service struct {
	log         *zap.Logger
	adapter     domain.Adapter
	purchaseSvc purchasedomain.Service
	events      *prometheus.CounterVec
}

func New(p Params) domain.Service {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Inbound payment webhook events by type and outcome.",
	}, []string{"type", "outcome"})
	p.Registerer.MustRegister(events)

	return &Service{
		log:         p.Log.Named("payment.webhook"),
		adapter:     p.Adapter,
		purchaseSvc: p.PurchaseSvc,
		events:      events,
	}
}

// Ingest verifies and dispatches one webhook delivery. Only signature
// failures propagate: once the event is authentic the provider gets its
// acknowledgment no matter what downstream processing does, because the
// provider redelivers on any non-2xx and redelivery would not fix a
// processing failure.
func (s *Service) Ingest(ctx context.Context, payload []byte, headers http.Header) error {
	if err := s.adapter.Verify(ctx, payload, headers); err != nil {
		s.events.WithLabelValues("unknown", "rejected").Inc()
		return domain.ErrInvalidSignature
	}

	event, err := s.adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, domain.ErrEventIgnored) {
			s.events.WithLabelValues("other", "ignored").Inc()
			s.log.Info("unhandled webhook event type")
			return nil
		}
		s.events.WithLabelValues("unknown", "unparseable").Inc()
		s.log.Warn("webhook payload could not be parsed", zap.Error(err))
		return nil
	}

	switch event.Type {
	case domain.EventCheckoutCompleted:
		s.log.Info("payment completed for session", zap.String("session_id", event.ObjectID))
		if err := s.purchaseSvc.Process(ctx, *event.Checkout); err != nil {
			s.events.WithLabelValues(event.Type, "failed").Inc()
			s.log.Error("purchase processing failed",
				zap.String("session_id", event.ObjectID),
				zap.Error(err),
			)
			return nil
		}
		s.events.WithLabelValues(event.Type, "processed").Inc()
	case domain.EventPaymentIntentSucceeded:
		// Intentionally inert; logged for observability only.
		s.events.WithLabelValues(event.Type, "logged").Inc()
		s.log.Info("payment intent succeeded", zap.String("payment_intent_id", event.ObjectID))
	}
	return nil
}
