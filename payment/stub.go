package payment

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Outcome scripts what StubGateway does.
type Outcome int

const (
	OutcomeSucceed Outcome = iota
	OutcomeCancel
	OutcomeFail
)

// StubGateway settles checkouts locally; used in dev.
type StubGateway struct {
	Outcome   Outcome
	SecretKey []byte
	Now       func() time.Time
}

// NewStubGateway returns a gateway that always succeeds.
func NewStubGateway() *StubGateway {
	return &StubGateway{Outcome: OutcomeSucceed, Now: time.Now}
}

func (g *StubGateway) Checkout(ctx context.Context, req CheckoutRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch g.Outcome {
	case OutcomeCancel:
		return nil, ErrCancelled
	case OutcomeFail:
		return nil, &Error{Code: "stub_declined", Message: "Payment declined"}
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	paymentID := fmt.Sprintf("PAY-%d", now().UnixNano())
	log.Printf("[StubGateway] Settled order %s as %s", req.OrderID, paymentID)
	return &Result{
		OrderID:   req.OrderID,
		PaymentID: paymentID,
		Signature: Sign(g.SecretKey, req.OrderID, paymentID),
	}, nil
}
