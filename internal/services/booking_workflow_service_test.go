package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lagossmartbus/booking-core/internal/catalog"
	"github.com/lagossmartbus/booking-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkflowTest(t *testing.T, latency time.Duration) *BookingWorkflowService {
	t.Helper()

	finalizerConfig := DefaultFinalizerConfig()
	finalizerConfig.MinimumLatency = latency

	clock := fixedClock{now: testNow}
	return NewBookingWorkflowService(
		catalog.NewStaticCatalog(),
		NewPricingService(DefaultPricingConfig(), clock, nil),
		setupSeatTest(nil),
		NewFinalizerService(finalizerConfig, clock, nil),
		nil,
	)
}

func testCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		Origin:         "ikeja",
		Destination:    "victoria-island",
		TravelDate:     time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		PassengerCount: 2,
	}
}

func testPassengers() []models.PassengerDetail {
	return []models.PassengerDetail{
		{Name: "Adaeze Okafor", Age: 31, Gender: models.GenderFemale},
		{Name: "Tunde Balogun", Age: 45, Gender: models.GenderMale},
	}
}

func testContact() models.ContactInfo {
	return models.ContactInfo{Email: "adaeze.okafor@example.com", Phone: "08031234567"}
}

// advance drives the workflow to the given step along the happy path.
func advance(t *testing.T, workflow *BookingWorkflowService, until models.WorkflowStep) {
	t.Helper()

	if until >= models.StepTripListed {
		_, err := workflow.SubmitSearch(testCriteria())
		require.NoError(t, err)
	}
	if until >= models.StepSeatSelecting {
		require.NoError(t, workflow.SelectTrip("trip-brt-0600"))
	}
	if until >= models.StepPassengerCapture {
		_, err := workflow.ToggleSeat("A1")
		require.NoError(t, err)
		_, err = workflow.ToggleSeat("A2")
		require.NoError(t, err)
		require.NoError(t, workflow.ConfirmSeats())
	}
	if until >= models.StepConfirmed {
		_, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
		require.NoError(t, err)
	}
}

func TestWorkflow_HappyPath(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	assert.Equal(t, models.StepSearching, workflow.Step())

	offers, err := workflow.SubmitSearch(testCriteria())
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	assert.Equal(t, models.StepTripListed, workflow.Step())

	require.NoError(t, workflow.SelectTrip("trip-brt-0600"))
	assert.Equal(t, models.StepSeatSelecting, workflow.Step())
	require.NotNil(t, workflow.SeatMap())

	_, err = workflow.ToggleSeat("A1")
	require.NoError(t, err)
	selection, err := workflow.ToggleSeat("A2")
	require.NoError(t, err)
	assert.Equal(t, models.SeatSelection{"A1", "A2"}, selection)

	require.NoError(t, workflow.ConfirmSeats())
	assert.Equal(t, models.StepPassengerCapture, workflow.Step())

	confirmation, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, workflow.Step())
	assert.Same(t, confirmation, workflow.Confirmation())

	// Quote was snapshotted at trip selection; the breakdown follows it.
	assert.Equal(t, workflow.Draft().Quote.FinalPrice, confirmation.Breakdown.FarePerSeat)
	assert.Equal(t, 2, confirmation.Breakdown.SeatCount)
}

func TestWorkflow_SearchRejectsIncompleteCriteria(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)

	criteria := testCriteria()
	criteria.Destination = ""

	_, err := workflow.SubmitSearch(criteria)
	require.Error(t, err)
	assert.Equal(t, models.StepSearching, workflow.Step())
	assert.Empty(t, workflow.Offers())
}

func TestWorkflow_StepGuards(t *testing.T) {
	tests := []struct {
		name string
		call func(w *BookingWorkflowService) error
	}{
		{"SelectTrip before search", func(w *BookingWorkflowService) error {
			return w.SelectTrip("trip-brt-0600")
		}},
		{"ToggleSeat before trip selection", func(w *BookingWorkflowService) error {
			_, err := w.ToggleSeat("A1")
			return err
		}},
		{"ConfirmSeats before trip selection", func(w *BookingWorkflowService) error {
			return w.ConfirmSeats()
		}},
		{"Finalize before passenger capture", func(w *BookingWorkflowService) error {
			_, err := w.Finalize(context.Background(), testPassengers(), testContact())
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			workflow := setupWorkflowTest(t, 0)
			assert.ErrorIs(t, tc.call(workflow), ErrInvalidTransition)
		})
	}
}

func TestWorkflow_SelectTripUnknownID(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepTripListed)

	err := workflow.SelectTrip("trip-nonexistent")
	assert.ErrorIs(t, err, ErrUnknownTrip)
	assert.Equal(t, models.StepTripListed, workflow.Step())
}

func TestWorkflow_ConfirmSeatsRequiresExactCount(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepSeatSelecting)

	assert.ErrorIs(t, workflow.ConfirmSeats(), ErrSelectionIncomplete)

	_, err := workflow.ToggleSeat("A1")
	require.NoError(t, err)
	assert.ErrorIs(t, workflow.ConfirmSeats(), ErrSelectionIncomplete)

	_, err = workflow.ToggleSeat("A2")
	require.NoError(t, err)
	assert.NoError(t, workflow.ConfirmSeats())
}

func TestWorkflow_GoBackCascadeClears(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepPassengerCapture)

	require.NoError(t, workflow.GoBack(models.StepTripListed))

	assert.Equal(t, models.StepTripListed, workflow.Step())
	draft := workflow.Draft()
	assert.Equal(t, testCriteria(), draft.Criteria)
	assert.Nil(t, draft.Trip)
	assert.Nil(t, draft.Quote)
	assert.Empty(t, draft.Seats)
	assert.Nil(t, workflow.SeatMap())
	assert.NotEmpty(t, workflow.Offers())

	// Re-selecting a trip resumes the flow with a fresh seat selection.
	require.NoError(t, workflow.SelectTrip("trip-primero-0815"))
	assert.Equal(t, "trip-primero-0815", workflow.Draft().Trip.ID)
	assert.Empty(t, workflow.Draft().Seats)
}

func TestWorkflow_GoBackToSearchClearsOffers(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepSeatSelecting)

	require.NoError(t, workflow.GoBack(models.StepSearching))

	assert.Equal(t, models.StepSearching, workflow.Step())
	assert.Empty(t, workflow.Offers())
	assert.Nil(t, workflow.SeatMap())
	// Criteria survive so the search form stays filled in.
	assert.Equal(t, testCriteria(), workflow.Draft().Criteria)
}

func TestWorkflow_GoBackRequiresEarlierStep(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepSeatSelecting)

	assert.ErrorIs(t, workflow.GoBack(models.StepSeatSelecting), ErrInvalidTransition)
	assert.ErrorIs(t, workflow.GoBack(models.StepPassengerCapture), ErrInvalidTransition)
	assert.Equal(t, models.StepSeatSelecting, workflow.Step())
}

func TestWorkflow_ConfirmedIsTerminal(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepConfirmed)

	assert.ErrorIs(t, workflow.GoBack(models.StepSearching), ErrAlreadyConfirmed)

	_, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWorkflow_RestartBeginsFreshDraft(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepConfirmed)
	issued := workflow.Confirmation()
	require.NotNil(t, issued)

	workflow.Restart()

	assert.Equal(t, models.StepSearching, workflow.Step())
	assert.Equal(t, &models.BookingDraft{}, workflow.Draft())
	assert.Nil(t, workflow.Confirmation())
	assert.Empty(t, workflow.Offers())

	// The previously issued confirmation itself is unaffected.
	assert.NotEmpty(t, issued.BookingID)
}

func TestWorkflow_ValidationFailureLeavesStateUntouched(t *testing.T) {
	workflow := setupWorkflowTest(t, 0)
	advance(t, workflow, models.StepPassengerCapture)

	bad := testPassengers()
	bad[0].Name = ""

	_, err := workflow.Finalize(context.Background(), bad, models.ContactInfo{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.StepPassengerCapture, workflow.Step())
	assert.Nil(t, workflow.Draft().Passengers)
	assert.Nil(t, workflow.Draft().Contact)

	// A corrected resubmit succeeds.
	confirmation, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, workflow.Step())
	assert.NotNil(t, confirmation)
}

func TestWorkflow_SingleFinalizeInFlight(t *testing.T) {
	workflow := setupWorkflowTest(t, 300*time.Millisecond)
	advance(t, workflow, models.StepPassengerCapture)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
		assert.NoError(t, err)
	}()

	time.Sleep(50 * time.Millisecond)
	_, err := workflow.Finalize(context.Background(), testPassengers(), testContact())
	assert.ErrorIs(t, err, ErrFinalizeInFlight)

	wg.Wait()
	assert.Equal(t, models.StepConfirmed, workflow.Step())
}

func TestClearForward(t *testing.T) {
	trip := standardTrip()
	full := models.BookingDraft{
		Criteria:   testCriteria(),
		Trip:       trip,
		Quote:      &models.QuotedFare{TripID: trip.ID, FinalPrice: 893},
		Seats:      models.SeatSelection{"A1", "A2"},
		Passengers: testPassengers(),
		Contact:    &models.ContactInfo{Email: "a@b.ng", Phone: "08031234567"},
	}

	t.Run("Back to searching keeps only criteria", func(t *testing.T) {
		out := clearForward(full, models.StepSearching)
		assert.Equal(t, full.Criteria, out.Criteria)
		assert.Nil(t, out.Trip)
		assert.Nil(t, out.Quote)
		assert.Empty(t, out.Seats)
		assert.Nil(t, out.Passengers)
		assert.Nil(t, out.Contact)
	})

	t.Run("Back to trip listing drops trip data", func(t *testing.T) {
		out := clearForward(full, models.StepTripListed)
		assert.Equal(t, full.Criteria, out.Criteria)
		assert.Nil(t, out.Trip)
		assert.Empty(t, out.Seats)
	})

	t.Run("Back to seat selection keeps trip and seats", func(t *testing.T) {
		out := clearForward(full, models.StepSeatSelecting)
		assert.Equal(t, full.Trip, out.Trip)
		assert.Equal(t, full.Seats, out.Seats)
		assert.Nil(t, out.Passengers)
		assert.Nil(t, out.Contact)
	})
}
