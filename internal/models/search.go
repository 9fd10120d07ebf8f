package models

import (
	"errors"
	"time"
)

// LocationID identifies a boarding or alighting location. The core only uses
// IDs for equality and premium-zone lookups; display labels belong to the
// location directory.
type LocationID string

// SearchCriteria captures what the user asked for in the search step.
// It is mutable until submitted to the workflow, fixed afterwards.
type SearchCriteria struct {
	Origin         LocationID `json:"origin"`
	Destination    LocationID `json:"destination"`
	TravelDate     time.Time  `json:"travel_date"`
	PassengerCount int        `json:"passenger_count"`
}

// Validate checks the criteria are complete enough to run a search.
func (c *SearchCriteria) Validate() error {
	if c.Origin == "" {
		return errors.New("origin is required")
	}
	if c.Destination == "" {
		return errors.New("destination is required")
	}
	if c.TravelDate.IsZero() {
		return errors.New("travel date is required")
	}
	if c.PassengerCount < 1 {
		return errors.New("passenger count must be at least 1")
	}
	return nil
}

// IsComplete reports whether all required search fields are present.
func (c *SearchCriteria) IsComplete() bool {
	return c.Validate() == nil
}
