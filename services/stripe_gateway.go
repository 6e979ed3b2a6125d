package services

import (
	"context"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// IntentRef is the pair the client needs to confirm a payment: the intent id
// and the client secret. Card details never pass through this service.
type IntentRef struct {
	ID           string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
}

// PaymentGateway abstracts the external payment processor. The checkout core
// only ever creates an intent and re-reads its status; confirmation happens
// between the client and the gateway directly.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*IntentRef, error)
	IntentStatus(ctx context.Context, intentID string) (string, error)
}

const IntentStatusSucceeded = string(stripe.PaymentIntentStatusSucceeded)

type StripeGateway struct {
	secretKey string
}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{secretKey: secretKey}
}

func (s *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*IntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &IntentRef{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// IntentStatus re-fetches the intent from the gateway. The backend never
// trusts a success report relayed by the client.
func (s *StripeGateway) IntentStatus(ctx context.Context, intentID string) (string, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return "", err
	}
	return string(pi.Status), nil
}
