package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

const (
	chargeSuccessful = "successful"
	chargeFailed     = "failed"
)

// Charger creates a card charge. *omise.Client satisfies it through OmiseCharger.
type Charger interface {
	CreateCharge(op *operations.CreateCharge) (*omise.Charge, error)
}

// OmiseCharger adapts an omise client to Charger.
type OmiseCharger struct {
	Client *omise.Client
}

func (c OmiseCharger) CreateCharge(op *operations.CreateCharge) (*omise.Charge, error) {
	ch := &omise.Charge{}
	if err := c.Client.Do(ch, op); err != nil {
		return nil, err
	}
	return ch, nil
}

// NewOmiseClient builds an omise client from a key pair.
func NewOmiseClient(publicKey, secretKey string) (*omise.Client, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	c.SetDebug(false)
	return c, nil
}

// OmiseGateway charges the payer's card token for the order amount.
type OmiseGateway struct {
	charger   Charger
	secretKey []byte
}

// NewOmiseGateway returns a gateway charging through charger. secretKey signs successful payments.
func NewOmiseGateway(charger Charger, secretKey string) *OmiseGateway {
	return &OmiseGateway{charger: charger, secretKey: []byte(secretKey)}
}

func (g *OmiseGateway) Checkout(ctx context.Context, req CheckoutRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Token == "" {
		return nil, ErrCancelled
	}
	amount := toSubunits(req.Amount)
	if amount <= 0 || req.Currency == "" {
		return nil, errors.New("invalid charge amount or currency")
	}

	metadata := map[string]interface{}{
		"order_id":    req.OrderID,
		"payer_name":  req.Payer.Name,
		"payer_email": req.Payer.Email,
	}
	for k, v := range req.Notes {
		metadata[k] = v
	}

	ch, err := g.charger.CreateCharge(&operations.CreateCharge{
		Amount:      amount,
		Currency:    strings.ToLower(req.Currency),
		Card:        req.Token,
		Description: req.Description,
		Metadata:    metadata,
	})
	if err != nil {
		log.Printf("[OmiseGateway] Charge for order %s failed: %v", req.OrderID, err)
		return nil, &Error{Code: "create_charge_error", Message: err.Error()}
	}

	log.Printf("[OmiseGateway] Charge %s for order %s is %s", ch.ID, req.OrderID, string(ch.Status))
	switch string(ch.Status) {
	case chargeSuccessful:
		return &Result{
			OrderID:   req.OrderID,
			PaymentID: ch.ID,
			Signature: Sign(g.secretKey, req.OrderID, ch.ID),
		}, nil
	case chargeFailed:
		e := &Error{PaymentID: ch.ID}
		if ch.FailureCode != nil {
			e.Code = *ch.FailureCode
		}
		if ch.FailureMessage != nil {
			e.Message = *ch.FailureMessage
		}
		return nil, e
	default:
		return nil, &Error{PaymentID: ch.ID, Code: "charge_" + string(ch.Status), Message: "payment was not completed"}
	}
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID".
func Sign(key []byte, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature produced by Sign.
func Verify(key []byte, orderID, paymentID, signature string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), want)
}

func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
