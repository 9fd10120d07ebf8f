package services

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/lagossmartbus/booking-core/internal/models"
	"github.com/sirupsen/logrus"
)

// Fixed 2+2 coach layout used for every trip.
const (
	seatMapTotalSeats  = 40
	seatMapRows        = 10
	seatMapColumns     = 4
	seatTierRowSpan    = 2 // price steps up every two rows
)

// OccupancyProvider supplies per-seat occupancy for a trip. The core treats
// occupancy as an opaque boolean per seat; once reported for a trip it must
// stay stable for the session.
type OccupancyProvider interface {
	Occupancy(tripID string, totalSeats int) []bool
}

// RandomOccupancyProvider mocks upstream occupancy with a pseudo-random
// scatter of 5-14 occupied seats, memoised per trip so a seat map never
// re-randomizes on regeneration.
type RandomOccupancyProvider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	cache map[string][]bool
}

// NewRandomOccupancyProvider creates a provider from the given seed.
func NewRandomOccupancyProvider(seed int64) *RandomOccupancyProvider {
	return &RandomOccupancyProvider{
		rng:   rand.New(rand.NewSource(seed)),
		cache: make(map[string][]bool),
	}
}

// Occupancy returns the stable occupancy flags for a trip.
func (p *RandomOccupancyProvider) Occupancy(tripID string, totalSeats int) []bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[tripID]; ok && len(cached) == totalSeats {
		return cached
	}

	occupied := make([]bool, totalSeats)
	count := p.rng.Intn(10) + 5
	for i := 0; i < count; i++ {
		occupied[p.rng.Intn(totalSeats)] = true
	}
	p.cache[tripID] = occupied
	return occupied
}

// FixedOccupancyProvider returns a predetermined occupancy map. Used by tests
// and by callers replaying a known trip state.
type FixedOccupancyProvider struct {
	OccupiedSeats map[string][]bool
}

// Occupancy returns the configured flags, or an all-free map when the trip is
// unknown.
func (p *FixedOccupancyProvider) Occupancy(tripID string, totalSeats int) []bool {
	if flags, ok := p.OccupiedSeats[tripID]; ok && len(flags) == totalSeats {
		return flags
	}
	return make([]bool, totalSeats)
}

// SeatInventoryConfig holds seat map generation settings
type SeatInventoryConfig struct {
	PriceIncrement int64 // tier step added every two rows
}

// DefaultSeatInventoryConfig returns the default tier increment
func DefaultSeatInventoryConfig() SeatInventoryConfig {
	return SeatInventoryConfig{PriceIncrement: 50}
}

// SeatInventoryService generates seat maps and enforces selection rules.
type SeatInventoryService struct {
	config    SeatInventoryConfig
	occupancy OccupancyProvider
	logger    *logrus.Logger
}

// NewSeatInventoryService creates a new seat inventory service
func NewSeatInventoryService(config SeatInventoryConfig, occupancy OccupancyProvider, logger *logrus.Logger) *SeatInventoryService {
	return &SeatInventoryService{
		config:    config,
		occupancy: occupancy,
		logger:    logger,
	}
}

// Layout builds the 40-seat, 10-row, 2+2 seat map for a trip. Seats closer to
// the front carry a lower tier; the tier steps up every two rows.
func (s *SeatInventoryService) Layout(trip *models.Trip) *models.SeatMap {
	occupied := s.occupancy.Occupancy(trip.ID, seatMapTotalSeats)

	seats := make([]models.Seat, 0, seatMapTotalSeats)
	for i := 1; i <= seatMapTotalSeats; i++ {
		row := (i - 1) / seatMapColumns
		col := (i - 1) % seatMapColumns
		seats = append(seats, models.Seat{
			Number:      fmt.Sprintf("%c%d", 'A'+row, col+1),
			RowIndex:    row,
			ColumnIndex: col,
			Occupied:    occupied[i-1],
			PriceTier:   trip.BaseFare + int64((i-1)/(seatMapColumns*seatTierRowSpan))*s.config.PriceIncrement,
		})
	}

	seatMap := &models.SeatMap{
		TripID: trip.ID,
		Rows:   seatMapRows,
		Seats:  seats,
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"trip_id":  trip.ID,
			"seats":    len(seats),
			"occupied": seatMap.OccupiedCount(),
		}).Debug("Seat map generated")
	}

	return seatMap
}

// Select applies one seat click to the current selection and returns the
// resulting selection:
//   - occupied seat: no-op
//   - already selected seat: deselected
//   - free seat with room under limit: appended
//   - free seat at the limit: no-op, earlier picks are never evicted
func (s *SeatInventoryService) Select(seatMap *models.SeatMap, current models.SeatSelection, seatNumber string, limit int) models.SeatSelection {
	seat, ok := seatMap.SeatByNumber(seatNumber)
	if !ok || seat.Occupied {
		return current
	}

	if current.Contains(seatNumber) {
		return current.Without(seatNumber)
	}

	if len(current) >= limit {
		return current
	}

	out := make(models.SeatSelection, len(current), len(current)+1)
	copy(out, current)
	return append(out, seatNumber)
}

// Confirmable reports whether the selection can advance to passenger capture:
// exactly one seat per passenger.
func (s *SeatInventoryService) Confirmable(current models.SeatSelection, limit int) bool {
	return len(current) == limit
}
