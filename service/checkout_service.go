package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bookvenue/api"
	"bookvenue/api/bookvenue"
	"bookvenue/draft"
	"bookvenue/models/booking"
	"bookvenue/payment"
)

const msgBookingFailed = "Failed to create booking"

// ErrPaymentNotRecorded is returned when the gateway took the payment but the backend did not
// accept the success report. Nothing is refunded.
var ErrPaymentNotRecorded = errors.New("payment captured but not recorded")

// Confirmation is a booking that was created and paid for.
type Confirmation struct {
	Draft   draft.Draft    `json:"draft"`
	Order   booking.Order  `json:"order"`
	Payment payment.Result `json:"payment"`
	Message string         `json:"message"`
}

// DraftPricer prices a draft against the venue's current availability.
type DraftPricer interface {
	RepriceDraft(ctx context.Context, d draft.Draft) (draft.Draft, error)
}

// CheckoutService runs the confirm-and-pay flow for a draft carried in navigation parameters.
type CheckoutService struct {
	bookingApi bookvenue.BookingAPI
	userApi    bookvenue.UserAPI
	gateway    payment.Gateway
	pricer     DraftPricer
	builder    *draft.Builder
	currency   string
}

func NewCheckoutService(
	bookingApi bookvenue.BookingAPI,
	userApi bookvenue.UserAPI,
	gateway payment.Gateway,
	pricer DraftPricer,
	builder *draft.Builder,
	currency string) *CheckoutService {

	return &CheckoutService{
		bookingApi: bookingApi,
		userApi:    userApi,
		gateway:    gateway,
		pricer:     pricer,
		builder:    builder,
		currency:   currency,
	}
}

// Confirm re-prices the draft, creates the booking, takes the payer through checkout and reports
// the outcome. The amount charged is the backend order's, else the re-priced total; the client's
// total is only compared against it. A cancelled checkout returns payment.ErrCancelled and reports
// nothing. Any other gateway failure is reported through payment-failure before it is returned.
func (cs *CheckoutService) Confirm(ctx context.Context, params draft.NavParams, cardToken string) (*Confirmation, error) {
	sent, err := draft.ParseNavParams(params)
	if err != nil {
		return nil, err
	}
	d, err := cs.pricer.RepriceDraft(ctx, sent)
	if err != nil {
		return nil, err
	}

	payer, err := cs.userApi.GetUserDetails(ctx)
	if err != nil {
		return nil, err
	}

	req, err := cs.builder.CreateRequest(d, *payer)
	if err != nil {
		return nil, err
	}

	created, err := cs.bookingApi.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	if created == nil || created.Order == nil {
		if created != nil && created.Message != "" {
			return nil, &api.Failure{Message: created.Message, Err: bookvenue.ErrNoOrder}
		}
		return nil, &api.Failure{Message: msgBookingFailed, Err: bookvenue.ErrNoOrder}
	}
	order := *created.Order
	log.Printf("[CheckoutService] Booking for draft %s opened order %s", d.ID, order.ID)

	result, err := cs.gateway.Checkout(ctx, draft.CheckoutParams(d, order, *payer, cs.currency, cardToken))
	if err != nil {
		if payment.IsCancellation(err) {
			log.Printf("[CheckoutService] Payer cancelled order %s", order.ID)
			return nil, payment.ErrCancelled
		}
		cs.reportFailure(ctx, order.ID, err)
		return nil, err
	}

	report := booking.PaymentSuccess{
		OrderID:   order.ID,
		PaymentID: result.PaymentID,
		Signature: result.Signature,
	}
	if err := cs.bookingApi.PaymentSuccess(ctx, report); err != nil {
		log.Printf("[CheckoutService] Payment %s for order %s was not recorded: %v", result.PaymentID, order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotRecorded, err)
	}

	return &Confirmation{
		Draft:   d,
		Order:   order,
		Payment: *result,
		Message: created.Message,
	}, nil
}

func (cs *CheckoutService) reportFailure(ctx context.Context, orderID string, cause error) {
	report := booking.PaymentFailure{OrderID: orderID, Description: cause.Error()}
	var gwErr *payment.Error
	if errors.As(cause, &gwErr) {
		report.PaymentID = gwErr.PaymentID
		report.Code = gwErr.Code
	}
	if err := cs.bookingApi.PaymentFailure(ctx, report); err != nil {
		log.Printf("[CheckoutService] Failed to report payment failure for order %s: %v", orderID, err)
	}
}
