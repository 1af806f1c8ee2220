package payment

import (
	"github.com/Jguyatt/backend/internal/config"
	"github.com/Jguyatt/backend/internal/payment/adapters/stripe"
	"github.com/Jguyatt/backend/internal/payment/domain"
	"github.com/Jguyatt/backend/internal/payment/webhook"
	"go.uber.org/fx"
)

func provideAdapter(cfg config.Config) domain.Adapter {
	return stripe.New(cfg.StripeWebhookSecret)
}

var Module = fx.Module("payment.webhook",
	fx.Provide(provideAdapter),
	fx.Provide(webhook.New),
)
