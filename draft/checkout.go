package draft

import (
	"strconv"

	"bookvenue/models/booking"
	"bookvenue/models/user"
	"bookvenue/payment"
)

// CheckoutParams assembles the gateway invocation for the order opened for d. The order's amount
// and currency win over the draft's total and currency when the backend sent them.
func CheckoutParams(d Draft, order booking.Order, payer user.User, currency, token string) payment.CheckoutRequest {
	if order.Currency != "" {
		currency = order.Currency
	}
	amount := d.TotalAmount
	if order.Amount > 0 {
		amount = order.Amount
	}
	return payment.CheckoutRequest{
		OrderID:  order.ID,
		Amount:   amount,
		Currency: currency,
		Payer: payment.Payer{
			Name:    payer.Name,
			Email:   payer.Email,
			Contact: payer.Phone,
		},
		Description: "Booking for " + d.VenueName,
		Notes: map[string]string{
			"venueName": d.VenueName,
			"courtName": d.CourtName,
			"date":      d.Date,
			"slots":     strconv.Itoa(d.SlotCount),
		},
		Token: token,
	}
}
