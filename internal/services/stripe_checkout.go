package services

import (
	"fmt"
	"log"
	"strings"

	"bookhaven_back_end/internal/models"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
)

// USD checkouts go through Stripe Checkout rather than Paystack.
// Both gateways satisfy the same contract: initialize returns a hosted
// redirect URL carrying the order id in metadata, verify resolves a
// reference back to that order id only on a confirmed payment.

// IsStripeReference reports whether a verification reference is a
// Stripe Checkout session id rather than a Paystack reference.
func IsStripeReference(reference string) bool {
	return strings.HasPrefix(reference, "cs_")
}

// InitializeStripeCheckout creates a hosted Checkout session for a USD
// order. Unit amounts are in cents. The success URL carries the session
// id so the verify leg can use it as the transaction reference.
func InitializeStripeCheckout(email string, items []models.OrderItem, orderID, callbackURL string) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(MinorUnits(item.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(email),
		LineItems:     lineItems,
		SuccessURL:    stripe.String(callbackURL + "?reference={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(callbackURL + "?cancelled=1"),
	}
	params.AddMetadata("order_id", orderID)

	s, err := session.New(params)
	if err != nil {
		log.Printf("❌ Stripe error: %v", err)
		return "", fmt.Errorf("stripe checkout creation failed: %w", err)
	}

	log.Printf("💳 Stripe Checkout created: %s for %s", s.ID, email)
	return s.URL, nil
}

// VerifyStripeCheckout resolves a Checkout session id. Only a session
// whose payment_status is paid settles an order.
func VerifyStripeCheckout(sessionID string) (orderID string, err error) {
	s, err := session.Get(sessionID, nil)
	if err != nil {
		log.Printf("❌ Stripe verify error: %v", err)
		return "", ErrPaymentNotVerified
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return "", ErrPaymentNotVerified
	}

	return s.Metadata["order_id"], nil
}
