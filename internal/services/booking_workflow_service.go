package services

import (
	"context"
	"sync"

	"github.com/lagossmartbus/booking-core/internal/catalog"
	"github.com/lagossmartbus/booking-core/internal/models"
	"github.com/sirupsen/logrus"
)

// TripOffer pairs a listed trip with its quoted fare for the trip listing step.
type TripOffer struct {
	Trip  models.Trip        `json:"trip"`
	Quote *models.QuotedFare `json:"quote"`
}

// BookingWorkflowService sequences the booking pipeline:
//
//	Searching → TripListed → SeatSelecting → PassengerCapture → Confirmed
//
// It owns the single booking draft; each step mutates the draft only through
// the workflow, and backward navigation cascade-clears data belonging to the
// steps being abandoned. Confirmed is terminal; Restart begins a new draft.
type BookingWorkflowService struct {
	catalog   catalog.TripCatalog
	pricing   *PricingService
	seats     *SeatInventoryService
	finalizer *FinalizerService
	logger    *logrus.Logger

	mu           sync.Mutex
	step         models.WorkflowStep
	draft        *models.BookingDraft
	offers       []TripOffer
	seatMap      *models.SeatMap
	finalizing   bool
	confirmation *models.Confirmation
}

// NewBookingWorkflowService creates a workflow at the search step with an
// empty draft.
func NewBookingWorkflowService(
	tripCatalog catalog.TripCatalog,
	pricing *PricingService,
	seats *SeatInventoryService,
	finalizer *FinalizerService,
	logger *logrus.Logger,
) *BookingWorkflowService {
	return &BookingWorkflowService{
		catalog:   tripCatalog,
		pricing:   pricing,
		seats:     seats,
		finalizer: finalizer,
		logger:    logger,
		step:      models.StepSearching,
		draft:     &models.BookingDraft{},
	}
}

// Step returns the workflow's current step.
func (s *BookingWorkflowService) Step() models.WorkflowStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Draft returns the workflow-owned draft. Callers get a handle for display;
// mutation happens only through workflow operations.
func (s *BookingWorkflowService) Draft() *models.BookingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Offers returns the trips listed for the submitted criteria.
func (s *BookingWorkflowService) Offers() []TripOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offers
}

// SeatMap returns the seat map of the chosen trip, nil before trip selection.
func (s *BookingWorkflowService) SeatMap() *models.SeatMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seatMap
}

// Confirmation returns the issued confirmation, nil until the booking is
// confirmed.
func (s *BookingWorkflowService) Confirmation() *models.Confirmation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmation
}

// SubmitSearch stores complete criteria, lists the catalog's trips for the
// route and quotes each one. Moves Searching → TripListed.
func (s *BookingWorkflowService) SubmitSearch(criteria models.SearchCriteria) ([]TripOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != models.StepSearching {
		return nil, ErrInvalidTransition
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	trips := s.catalog.TripsFor(criteria)
	offers := make([]TripOffer, 0, len(trips))
	for _, trip := range trips {
		t := trip
		offers = append(offers, TripOffer{
			Trip:  t,
			Quote: s.pricing.Quote(&t, criteria),
		})
	}

	s.draft.Criteria = criteria
	s.offers = offers
	s.step = models.StepTripListed

	s.logInfo(logrus.Fields{
		"origin":      criteria.Origin,
		"destination": criteria.Destination,
		"passengers":  criteria.PassengerCount,
		"trips":       len(offers),
	}, "Search submitted, trips listed")

	return offers, nil
}

// SelectTrip stores the chosen trip with its current quote snapshot and
// generates the seat map. Moves TripListed → SeatSelecting.
func (s *BookingWorkflowService) SelectTrip(tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != models.StepTripListed {
		return ErrInvalidTransition
	}

	for _, offer := range s.offers {
		if offer.Trip.ID == tripID {
			trip := offer.Trip
			s.draft.Trip = &trip
			s.draft.Quote = offer.Quote
			s.draft.Seats = nil
			s.seatMap = s.seats.Layout(&trip)
			s.step = models.StepSeatSelecting

			s.logInfo(logrus.Fields{
				"trip_id":     trip.ID,
				"operator":    trip.OperatorName,
				"final_price": offer.Quote.FinalPrice,
			}, "Trip selected")

			return nil
		}
	}
	return ErrUnknownTrip
}

// ToggleSeat applies one seat click: select, deselect, or silently ignore an
// occupied or over-limit pick. Constraint violations are no-ops, not errors;
// the flow is never interrupted by a seat click.
func (s *BookingWorkflowService) ToggleSeat(seatNumber string) (models.SeatSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != models.StepSeatSelecting {
		return nil, ErrInvalidTransition
	}

	s.draft.Seats = s.seats.Select(s.seatMap, s.draft.Seats, seatNumber, s.draft.Criteria.PassengerCount)
	return s.draft.Seats, nil
}

// ConfirmSeats advances to passenger capture once exactly one seat per
// passenger is selected. Moves SeatSelecting → PassengerCapture.
func (s *BookingWorkflowService) ConfirmSeats() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != models.StepSeatSelecting {
		return ErrInvalidTransition
	}
	if !s.seats.Confirmable(s.draft.Seats, s.draft.Criteria.PassengerCount) {
		return ErrSelectionIncomplete
	}

	s.step = models.StepPassengerCapture

	s.logInfo(logrus.Fields{
		"trip_id": s.draft.Trip.ID,
		"seats":   []string(s.draft.Seats),
	}, "Seats confirmed")

	return nil
}

// Finalize validates the captured details and issues the confirmation. On a
// validation error the draft and step are untouched so the caller can correct
// and resubmit. Only one finalize may be in flight; further calls are
// rejected, not queued. Moves PassengerCapture → Confirmed.
func (s *BookingWorkflowService) Finalize(ctx context.Context, passengers []models.PassengerDetail, contact models.ContactInfo) (*models.Confirmation, error) {
	s.mu.Lock()
	if s.step != models.StepPassengerCapture {
		s.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if s.finalizing {
		s.mu.Unlock()
		return nil, ErrFinalizeInFlight
	}
	s.finalizing = true

	// Candidate carries the submitted details; the owned draft is only
	// updated once finalization succeeds.
	candidate := s.draft.Snapshot()
	candidate.Passengers = append([]models.PassengerDetail(nil), passengers...)
	candidate.Contact = &contact
	s.mu.Unlock()

	confirmation, err := s.finalizer.Finalize(ctx, &candidate)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizing = false

	if err != nil {
		return nil, err
	}

	s.draft = &candidate
	s.confirmation = confirmation
	s.step = models.StepConfirmed

	return confirmation, nil
}

// GoBack rewinds to a strictly earlier step, clearing all data belonging to
// the steps being abandoned. A confirmed booking cannot be rewound.
func (s *BookingWorkflowService) GoBack(target models.WorkflowStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == models.StepConfirmed {
		return ErrAlreadyConfirmed
	}
	if !target.IsBefore(s.step) {
		return ErrInvalidTransition
	}

	cleared := clearForward(*s.draft, target)
	s.draft = &cleared
	if target.IsBefore(models.StepSeatSelecting) {
		s.seatMap = nil
	}
	if target == models.StepSearching {
		s.offers = nil
	}
	from := s.step
	s.step = target

	s.logInfo(logrus.Fields{
		"from": from.String(),
		"to":   target.String(),
	}, "Workflow rewound")

	return nil
}

// Restart abandons the current draft (or a finished booking) and starts a new
// empty one at the search step. Issued confirmations are unaffected.
func (s *BookingWorkflowService) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = &models.BookingDraft{}
	s.offers = nil
	s.seatMap = nil
	s.confirmation = nil
	s.step = models.StepSearching

	s.logInfo(nil, "Workflow restarted")
}

// clearForward returns a copy of the draft keeping only the data belonging to
// the target step and the steps before it. Pure, so backward navigation's
// cascade behavior is directly testable.
func clearForward(draft models.BookingDraft, target models.WorkflowStep) models.BookingDraft {
	out := models.BookingDraft{Criteria: draft.Criteria}
	if target >= models.StepSeatSelecting {
		out.Trip = draft.Trip
		out.Quote = draft.Quote
		out.Seats = draft.Seats
	}
	// Passenger and contact data only survive at PassengerCapture or later,
	// which backward navigation never targets from ahead of itself.
	if target >= models.StepPassengerCapture {
		out.Passengers = draft.Passengers
		out.Contact = draft.Contact
	}
	return out
}

func (s *BookingWorkflowService) logInfo(fields logrus.Fields, msg string) {
	if s.logger == nil {
		return
	}
	if fields == nil {
		s.logger.Info(msg)
		return
	}
	s.logger.WithFields(fields).Info(msg)
}
