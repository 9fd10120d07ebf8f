package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lagossmartbus/booking-core/internal/models"
	pkgvalidator "github.com/lagossmartbus/booking-core/pkg/validator"
	"github.com/sirupsen/logrus"
)

var (
	// ErrIncompleteDraft indicates the draft is missing a trip, quote, seats
	// or passenger data and cannot be finalized
	ErrIncompleteDraft = errors.New("booking draft is incomplete")

	// ErrPassengerSeatMismatch indicates the passenger list is not
	// index-aligned with the seat selection
	ErrPassengerSeatMismatch = errors.New("passenger count must match selected seat count")
)

// FieldError names one invalid input field with a human readable message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every invalid passenger/contact field so the
// caller can surface all of them at once rather than one per submit.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("invalid booking details: %s", strings.Join(names, ", "))
}

// Has reports whether the error covers the named field.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// FinalizerConfig holds the amount constants and the simulated confirmation
// round-trip latency
type FinalizerConfig struct {
	Currency         string
	TaxRate          float64
	ServiceFee       int64
	MinimumLatency   time.Duration
	BookingRefPrefix string
}

// DefaultFinalizerConfig returns the Nigerian VAT rate and the flat ₦100
// convenience fee
func DefaultFinalizerConfig() FinalizerConfig {
	return FinalizerConfig{
		Currency:         "NGN",
		TaxRate:          0.075,
		ServiceFee:       100,
		MinimumLatency:   2 * time.Second,
		BookingRefPrefix: "LG",
	}
}

// FinalizerService validates passenger and contact details, computes the
// payable amount and issues the immutable booking confirmation.
type FinalizerService struct {
	config   FinalizerConfig
	clock    Clock
	validate *validator.Validate
	phones   *pkgvalidator.PhoneValidator
	logger   *logrus.Logger
}

// NewFinalizerService creates a new finalizer service
func NewFinalizerService(config FinalizerConfig, clock Clock, logger *logrus.Logger) *FinalizerService {
	if clock == nil {
		clock = SystemClock()
	}
	return &FinalizerService{
		config:   config,
		clock:    clock,
		validate: validator.New(),
		phones:   pkgvalidator.NewPhoneValidator(),
		logger:   logger,
	}
}

// Finalize validates the draft and issues a confirmation. On validation
// failure it returns a *ValidationError listing every invalid field and
// mutates nothing. The call is modeled as a backend round-trip with a fixed
// minimum latency; cancel via ctx to abandon the wait.
func (s *FinalizerService) Finalize(ctx context.Context, draft *models.BookingDraft) (*models.Confirmation, error) {
	if err := s.checkDraftShape(draft); err != nil {
		return nil, err
	}

	if verr := s.ValidateDetails(draft.Passengers, draft.Contact); verr != nil {
		return nil, verr
	}

	breakdown := s.ComputeBreakdown(draft.Quote.FinalPrice, len(draft.Seats))

	// Simulated confirmation round-trip. Not retried; either a confirmation
	// comes back or the context is cancelled.
	select {
	case <-time.After(s.config.MinimumLatency):
	case <-ctx.Done():
		return nil, fmt.Errorf("finalize cancelled: %w", ctx.Err())
	}

	snapshot := draft.Snapshot()
	if normalized, err := s.phones.Validate(snapshot.Contact.Phone); err == nil {
		snapshot.Contact.Phone = normalized
	}

	confirmation := &models.Confirmation{
		BookingID: s.newBookingID(),
		Draft:     snapshot,
		Breakdown: breakdown,
		Currency:  s.config.Currency,
		IssuedAt:  s.clock.Now(),
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"booking_id": confirmation.BookingID,
			"trip_id":    snapshot.Trip.ID,
			"seats":      len(snapshot.Seats),
			"total":      breakdown.Total,
			"currency":   confirmation.Currency,
		}).Info("Booking confirmed")
	}

	return confirmation, nil
}

// ValidateDetails checks every passenger and the contact info, returning nil
// or an aggregate of all invalid fields.
func (s *FinalizerService) ValidateDetails(passengers []models.PassengerDetail, contact *models.ContactInfo) *ValidationError {
	var fields []FieldError

	for i := range passengers {
		if err := s.validate.Struct(&passengers[i]); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fields = append(fields, FieldError{
						Field:   fmt.Sprintf("passengers[%d].%s", i, strings.ToLower(fe.Field())),
						Message: fieldMessage(fe),
					})
				}
			}
		}
	}

	if contact == nil {
		fields = append(fields,
			FieldError{Field: "contact.email", Message: "is required"},
			FieldError{Field: "contact.phone", Message: "is required"},
		)
	} else if err := s.validate.Struct(contact); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields = append(fields, FieldError{
					Field:   "contact." + strings.ToLower(fe.Field()),
					Message: fieldMessage(fe),
				})
			}
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ComputeBreakdown derives the payable amount: fare × seats, plus VAT on the
// subtotal, plus the flat service fee.
func (s *FinalizerService) ComputeBreakdown(farePerSeat int64, seatCount int) models.FareBreakdown {
	subtotal := farePerSeat * int64(seatCount)
	tax := int64(math.Round(float64(subtotal) * s.config.TaxRate))
	return models.FareBreakdown{
		FarePerSeat: farePerSeat,
		SeatCount:   seatCount,
		Subtotal:    subtotal,
		Tax:         tax,
		ServiceFee:  s.config.ServiceFee,
		Total:       subtotal + tax + s.config.ServiceFee,
	}
}

func (s *FinalizerService) checkDraftShape(draft *models.BookingDraft) error {
	if draft == nil || draft.Trip == nil || draft.Quote == nil || len(draft.Seats) == 0 {
		return ErrIncompleteDraft
	}
	if len(draft.Passengers) != len(draft.Seats) {
		return ErrPassengerSeatMismatch
	}
	return nil
}

// newBookingID builds a reference like LG-8F2A41C7. A random identifier
// rather than a timestamp, so rapid repeated confirmations cannot collide.
func (s *FinalizerService) newBookingID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s", s.config.BookingRefPrefix, suffix)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "max":
		return "must be between 1 and 120"
	case "oneof":
		return "must be male, female or other"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
