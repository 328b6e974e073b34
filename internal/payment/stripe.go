// Package payment creates Stripe payment intents for event
// registrations. Webhook handling and refunds stay with Stripe's
// dashboard tooling.
package payment

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type StripeProvider struct {
	api *client.API
}

func NewStripeProvider(conf *StripeConfig) *StripeProvider {
	api := &client.API{}
	api.Init(conf.SecretKey, nil)

	return &StripeProvider{
		api: api,
	}
}

// CreatePaymentIntent registers a pending charge and returns the
// intent's id. Amount is in the currency's major unit.
func (p *StripeProvider) CreatePaymentIntent(amount float64, currency, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(amount * 100)),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("p.api.PaymentIntents.New -> %w", err)
	}

	return intent.ID, nil
}
