// Package catalog supplies the static trip listing and location directory the
// booking core consumes. It stands in for an upstream inventory system: trips
// arrive already filtered and sorted for the searched route, and the core does
// no further filtering of its own.
package catalog

import (
	"github.com/lagossmartbus/booking-core/internal/models"
)

// TripCatalog lists the trips available for a searched route.
type TripCatalog interface {
	TripsFor(criteria models.SearchCriteria) []models.Trip
}

// StaticCatalog is an in-memory TripCatalog seeded with a fixed schedule.
type StaticCatalog struct {
	trips []models.Trip
}

// NewStaticCatalog creates a catalog over the given trips. With no trips it
// falls back to the default Lagos schedule.
func NewStaticCatalog(trips ...models.Trip) *StaticCatalog {
	if len(trips) == 0 {
		trips = defaultTrips()
	}
	return &StaticCatalog{trips: trips}
}

// TripsFor returns the scheduled trips for the route. The static schedule
// serves every route pair, so criteria only matter to downstream pricing.
func (c *StaticCatalog) TripsFor(criteria models.SearchCriteria) []models.Trip {
	out := make([]models.Trip, len(c.trips))
	copy(out, c.trips)
	return out
}

// TripByID looks up a single trip.
func (c *StaticCatalog) TripByID(id string) (*models.Trip, bool) {
	for i := range c.trips {
		if c.trips[i].ID == id {
			trip := c.trips[i]
			return &trip, true
		}
	}
	return nil, false
}

func defaultTrips() []models.Trip {
	return []models.Trip{
		{
			ID:              "trip-brt-0600",
			OperatorName:    "BRT Lagos",
			DepartureTime:   "06:00",
			ArrivalTime:     "07:30",
			DurationMinutes: 90,
			ServiceClass:    models.ServiceClassStandard,
			BaseFare:        800,
			SeatsAvailable:  15,
			Rating:          4.5,
			Amenities:       []string{"WiFi", "AC", "CCTV", "Comfortable Seats"},
		},
		{
			ID:              "trip-primero-0815",
			OperatorName:    "Primero Transport",
			DepartureTime:   "08:15",
			ArrivalTime:     "10:00",
			DurationMinutes: 105,
			ServiceClass:    models.ServiceClassPremium,
			BaseFare:        1200,
			SeatsAvailable:  8,
			Rating:          4.2,
			Amenities:       []string{"WiFi", "AC", "USB Charging", "Entertainment"},
		},
		{
			ID:              "trip-lagosride-0730",
			OperatorName:    "Lagos Ride",
			DepartureTime:   "07:30",
			ArrivalTime:     "09:15",
			DurationMinutes: 105,
			ServiceClass:    models.ServiceClassExecutive,
			BaseFare:        1500,
			SeatsAvailable:  22,
			Rating:          4.7,
			Amenities:       []string{"WiFi", "AC", "Leather Seats", "Refreshments", "Entertainment"},
		},
	}
}
