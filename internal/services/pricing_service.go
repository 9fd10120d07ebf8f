package services

import (
	"math"
	"strings"
	"time"

	"github.com/lagossmartbus/booking-core/internal/models"
	"github.com/sirupsen/logrus"
)

// Clock supplies the current time to services that need lead-time math.
// Injected so tests can pin the date.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// Price factor multipliers. Each rule is independent; all multipliers are
// positive, so a positive base fare can never quote to zero or below.
const (
	morningRushMultiplier      = 1.25
	eveningRushMultiplier      = 1.20
	nightServiceMultiplier     = 1.05
	veryHighDemandMultiplier   = 1.30
	highDemandMultiplier       = 1.15
	goodAvailabilityMultiplier = 0.90
	executiveClassMultiplier   = 1.15
	premiumClassMultiplier     = 1.08
	weekendMultiplier          = 1.10
	sundayMultiplier           = 1.08
	earlyBookingMultiplier     = 0.85
	sameDayMultiplier          = 1.20
	premiumOperatorMultiplier  = 1.05
	premiumRouteMultiplier     = 1.12
)

// PricingConfig holds the tunable inputs of the pricing rules
type PricingConfig struct {
	PremiumZones []models.LocationID // routes touching these zones pay a premium
}

// DefaultPricingConfig returns the default Lagos premium zones
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		PremiumZones: []models.LocationID{"victoria-island", "ikoyi", "lekki"},
	}
}

// PricingService derives a quoted fare from a trip's base fare and the search
// context. Quotes are deterministic for a fixed current date and are never
// persisted.
type PricingService struct {
	config PricingConfig
	clock  Clock
	logger *logrus.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(config PricingConfig, clock Clock, logger *logrus.Logger) *PricingService {
	if clock == nil {
		clock = SystemClock()
	}
	return &PricingService{
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// Quote applies the pricing rules in canonical order and returns the quoted
// fare with the ordered list of triggered factors. Order only matters for
// reporting; the multipliers commute.
func (s *PricingService) Quote(trip *models.Trip, criteria models.SearchCriteria) *models.QuotedFare {
	price := float64(trip.BaseFare)
	var factors []models.PriceFactor

	apply := func(label string, multiplier float64) {
		price *= multiplier
		direction := models.FactorIncrease
		if multiplier < 1 {
			direction = models.FactorDecrease
		}
		factors = append(factors, models.PriceFactor{
			Label:      label,
			Multiplier: multiplier,
			Direction:  direction,
		})
	}

	// 1. Time of day. Ranges are mutually exclusive; at most one applies.
	if hour, err := trip.DepartureHour(); err == nil {
		switch {
		case hour >= 6 && hour <= 10:
			apply("Morning Rush", morningRushMultiplier)
		case hour >= 16 && hour <= 20:
			apply("Evening Rush", eveningRushMultiplier)
		case hour >= 22 || hour <= 5:
			apply("Night Service", nightServiceMultiplier)
		}
	}

	// 2. Scarcity
	switch {
	case trip.SeatsAvailable <= 5:
		apply("Very High Demand", veryHighDemandMultiplier)
	case trip.SeatsAvailable <= 10:
		apply("High Demand", highDemandMultiplier)
	case trip.SeatsAvailable >= 20:
		apply("Good Availability", goodAvailabilityMultiplier)
	}

	// 3. Service class premium
	class := string(trip.ServiceClass)
	if strings.Contains(class, "Executive") {
		apply("Executive Class", executiveClassMultiplier)
	} else if strings.Contains(class, "Premium") {
		apply("Premium Class", premiumClassMultiplier)
	}

	// 4. Day of week
	switch criteria.TravelDate.Weekday() {
	case time.Friday, time.Saturday:
		apply("Weekend Travel", weekendMultiplier)
	case time.Sunday:
		apply("Sunday Premium", sundayMultiplier)
	}

	// 5. Lead time
	days := daysUntil(s.clock.Now(), criteria.TravelDate)
	if days >= 3 {
		apply("Early Booking", earlyBookingMultiplier)
	} else if days <= 0 {
		apply("Same Day Booking", sameDayMultiplier)
	}

	// 6. Rating premium
	if trip.Rating >= 4.5 {
		apply("Premium Operator", premiumOperatorMultiplier)
	}

	// 7. Route premium
	if s.isPremiumZone(criteria.Origin) || s.isPremiumZone(criteria.Destination) {
		apply("Premium Route", premiumRouteMultiplier)
	}

	quote := &models.QuotedFare{
		TripID:     trip.ID,
		BasePrice:  trip.BaseFare,
		FinalPrice: int64(math.Round(price)),
		Factors:    factors,
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"trip_id":     trip.ID,
			"base_price":  quote.BasePrice,
			"final_price": quote.FinalPrice,
			"factors":     len(quote.Factors),
		}).Debug("Fare quoted")
	}

	return quote
}

func (s *PricingService) isPremiumZone(id models.LocationID) bool {
	for _, zone := range s.config.PremiumZones {
		if zone == id {
			return true
		}
	}
	return false
}

// daysUntil returns the calendar-day difference between now and the travel
// date: 0 for same-day travel, negative for past dates.
func daysUntil(now, travel time.Time) int {
	ny, nm, nd := now.Date()
	ty, tm, td := travel.Date()
	start := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
