package models

import "time"

// WorkflowStep enumerates the booking pipeline's states in order.
type WorkflowStep int

const (
	StepSearching WorkflowStep = iota + 1
	StepTripListed
	StepSeatSelecting
	StepPassengerCapture
	StepConfirmed
)

// String returns a human readable step name.
func (s WorkflowStep) String() string {
	switch s {
	case StepSearching:
		return "searching"
	case StepTripListed:
		return "trip_listed"
	case StepSeatSelecting:
		return "seat_selecting"
	case StepPassengerCapture:
		return "passenger_capture"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// IsBefore reports whether s comes strictly earlier in the pipeline than other.
func (s WorkflowStep) IsBefore(other WorkflowStep) bool {
	return s < other
}

// BookingDraft is the accumulating aggregate of a user's selections. It is
// owned exclusively by the workflow; steps receive it by handle and only the
// current step may mutate it.
type BookingDraft struct {
	Criteria   SearchCriteria    `json:"criteria"`
	Trip       *Trip             `json:"trip,omitempty"`
	Quote      *QuotedFare       `json:"quote,omitempty"`
	Seats      SeatSelection     `json:"seats,omitempty"`
	Passengers []PassengerDetail `json:"passengers,omitempty"`
	Contact    *ContactInfo      `json:"contact,omitempty"`
}

// Snapshot returns a deep copy of the draft, used when issuing an immutable
// confirmation so later workflow restarts cannot touch the record.
func (d *BookingDraft) Snapshot() BookingDraft {
	out := BookingDraft{Criteria: d.Criteria}
	if d.Trip != nil {
		trip := *d.Trip
		trip.Amenities = append([]string(nil), d.Trip.Amenities...)
		out.Trip = &trip
	}
	if d.Quote != nil {
		quote := *d.Quote
		quote.Factors = append([]PriceFactor(nil), d.Quote.Factors...)
		out.Quote = &quote
	}
	out.Seats = append(SeatSelection(nil), d.Seats...)
	out.Passengers = append([]PassengerDetail(nil), d.Passengers...)
	if d.Contact != nil {
		contact := *d.Contact
		out.Contact = &contact
	}
	return out
}

// FareBreakdown itemises the payable amount of a confirmed booking.
type FareBreakdown struct {
	FarePerSeat int64 `json:"fare_per_seat"`
	SeatCount   int   `json:"seat_count"`
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	ServiceFee  int64 `json:"service_fee"`
	Total       int64 `json:"total"`
}

// Confirmation is the immutable record produced once a booking is finalized.
type Confirmation struct {
	BookingID string        `json:"booking_id"`
	Draft     BookingDraft  `json:"draft"`
	Breakdown FareBreakdown `json:"breakdown"`
	Currency  string        `json:"currency"`
	IssuedAt  time.Time     `json:"issued_at"`
}

// TotalAmount returns the final payable amount of the booking.
func (c *Confirmation) TotalAmount() int64 {
	return c.Breakdown.Total
}
