// server/internal/payment/stripe.go
package payment

import (
	"ride-booking-api-server/internal/models"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Service wraps the payment provider. The rest of the server only passes
// required fields through and receives either a created-resource
// identifier or a provider error.
type Service struct {
	sc      *client.API
	siteURL string
}

// New builds a Service for the given secret key. siteURL is the
// front-end origin used for checkout redirects.
func New(secretKey, siteURL string) *Service {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Service{sc: sc, siteURL: siteURL}
}

// CreateCheckoutSession opens a card-setup checkout session for an
// existing provider customer and returns the session id.
func (s *Service) CreateCheckoutSession(customerID string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSetup)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Customer:           stripe.String(customerID),
		SuccessURL:         stripe.String(s.siteURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.siteURL + "/cancel"),
	}
	session, err := s.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

// CreateCustomer registers the account with the provider and returns the
// provider customer id.
func (s *Service) CreateCustomer(email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	customer, err := s.sc.Customers.New(params)
	if err != nil {
		return "", err
	}
	return customer.ID, nil
}

// CreateSetupIntent prepares off-session card storage and returns the
// client secret the front-end needs.
func (s *Service) CreateSetupIntent(customerID string) (string, error) {
	params := &stripe.SetupIntentParams{
		Customer: stripe.String(customerID),
		Usage:    stripe.String("off_session"),
	}
	intent, err := s.sc.SetupIntents.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// CreatePaymentIntent charges a stored card off-session and confirms
// immediately, attaching the customer's name and address as shipping
// details. amount is in the smallest currency unit (cents).
func (s *Service) CreatePaymentIntent(amount int64, customerID, paymentMethodID, customerName string, customerAddress models.Address) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		Customer:           stripe.String(customerID),
		PaymentMethod:      stripe.String(paymentMethodID),
		Description:        stripe.String("Ride booking donation payment"),
		OffSession:         stripe.Bool(true),
		Confirm:            stripe.Bool(true),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Shipping: &stripe.ShippingDetailsParams{
			Name: stripe.String(customerName),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(customerAddress.Line1),
				City:       stripe.String(customerAddress.City),
				State:      stripe.String(customerAddress.State),
				PostalCode: stripe.String(customerAddress.PostalCode),
				Country:    stripe.String(customerAddress.Country),
			},
		},
	}
	return s.sc.PaymentIntents.New(params)
}

// GetPaymentMethod fetches a stored payment method, used to show the
// rider their card summary.
func (s *Service) GetPaymentMethod(paymentMethodID string) (*stripe.PaymentMethod, error) {
	return s.sc.PaymentMethods.Get(paymentMethodID, nil)
}
