// Package payment is the collaborator that takes the payer through checkout for a backend order.
package payment

import (
	"context"
	"errors"
	"strings"
)

// ErrCancelled is returned when the payer abandons checkout.
var ErrCancelled = errors.New("payment cancelled by user")

// Payer is the contact information prefilled at checkout.
type Payer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutRequest opens a checkout for an order the backend created.
type CheckoutRequest struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Payer    Payer   `json:"payer"`

	Description string            `json:"description"`
	Notes       map[string]string `json:"notes,omitempty"`

	// Token is the card token collected on the device, when the gateway charges one.
	Token string `json:"token,omitempty"`
}

// Result is a successful checkout. Signature lets the backend verify the payment.
type Result struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Gateway runs a checkout. It returns ErrCancelled (possibly wrapped) when the payer backs out, and
// an *Error for every other gateway-side failure.
type Gateway interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*Result, error)
}

// Error is a failed checkout as the gateway reported it.
type Error struct {
	PaymentID string
	Code      string
	Message   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "payment failed: " + e.Code
	}
	return e.Message
}

// Is makes a cancellation-coded failure match ErrCancelled.
func (e *Error) Is(target error) bool {
	return target == ErrCancelled && strings.Contains(strings.ToLower(e.Code), "cancel")
}

// IsCancellation reports whether err means the payer cancelled, by sentinel, code or message.
func IsCancellation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCancelled) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "cancelled")
}
