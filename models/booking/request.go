package booking

// CreateRequest is the body of POST /booking.
type CreateRequest struct {
	FacilityID    int64          `json:"facility_id"`
	CourtID       int64          `json:"court_id"`
	Date          string         `json:"date"`
	Duration      int            `json:"duration"`
	SlotCount     int            `json:"slot_count"`
	TotalPrice    int64          `json:"total_price"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Contact       string         `json:"contact"`
	Address       string         `json:"address"`
	SelectedSlots []SelectedSlot `json:"selected_slots"`
}

// SelectedSlot is one slot line of a create-booking request. Price is string-encoded on the wire.
type SelectedSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     string `json:"price"`
}

// Order is the gateway order the backend opens for a new booking.
type Order struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateResult is the outcome of a create-booking call.
type CreateResult struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order"`
	Message string `json:"message"`
}

// PaymentSuccess is the body of POST /payment-success.
type PaymentSuccess struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// PaymentFailure is the body of POST /payment-failure.
type PaymentFailure struct {
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}
