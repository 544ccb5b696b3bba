package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentService wraps the payment gateway. One intent per checkout; gateway
// failures surface as upstream errors and are never retried here.
type PaymentService struct {
	api *client.API
}

func NewPaymentService(secretKey string) *PaymentService {
	if secretKey == "" {
		return &PaymentService{}
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &PaymentService{api: api}
}

type CheckoutInput struct {
	Amount             int64
	Currency           string
	PaymentMethodTypes []string
	PropertyName       string
}

// CreateCheckoutIntent creates a payment intent for the stay and returns the
// client secret the frontend completes the payment with. Amount is in major
// units and converted to the gateway's minor units here.
func (s *PaymentService) CreateCheckoutIntent(in CheckoutInput) (string, error) {
	if s.api == nil {
		return "", fmt.Errorf("%w: payment gateway not configured", ErrUpstream)
	}
	if in.Amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	currency := in.Currency
	if currency == "" {
		currency = "inr"
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(in.Amount * 100),
		Currency:    stripe.String(currency),
		Description: stripe.String("Payment for property booking"),
	}
	if len(in.PaymentMethodTypes) > 0 {
		params.PaymentMethodTypes = stripe.StringSlice(in.PaymentMethodTypes)
	}
	params.AddMetadata("propertyName", in.PropertyName)

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: payment intent: %v", ErrUpstream, err)
	}

	return intent.ClientSecret, nil
}
