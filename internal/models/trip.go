package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServiceClass represents the service tier a trip is operated under
type ServiceClass string

const (
	ServiceClassStandard  ServiceClass = "AC Standard"
	ServiceClassPremium   ServiceClass = "AC Premium"
	ServiceClassExecutive ServiceClass = "Executive"
	ServiceClassSleeper   ServiceClass = "Sleeper"
)

// Trip represents a single scheduled bus departure offered for a route.
// Trips are supplied by the catalog and are read-only to the booking core.
type Trip struct {
	ID              string       `json:"id"`
	OperatorName    string       `json:"operator_name"`
	DepartureTime   string       `json:"departure_time"` // "15:04" 24h clock
	ArrivalTime     string       `json:"arrival_time"`
	DurationMinutes int          `json:"duration_minutes"`
	ServiceClass    ServiceClass `json:"service_class"`
	BaseFare        int64        `json:"base_fare"` // whole currency units
	SeatsAvailable  int          `json:"seats_available"`
	Rating          float64      `json:"rating"` // 0-5
	Amenities       []string     `json:"amenities"`
}

// DepartureHour returns the hour component of the departure time (0-23).
func (t *Trip) DepartureHour() (int, error) {
	parts := strings.SplitN(t.DepartureTime, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid departure time %q", t.DepartureTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid departure hour %q", parts[0])
	}
	return hour, nil
}

// HasAmenity reports whether the trip advertises the given amenity.
func (t *Trip) HasAmenity(name string) bool {
	for _, a := range t.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Validate checks the catalog supplied the minimum fields the core relies on.
func (t *Trip) Validate() error {
	if t.ID == "" {
		return errors.New("trip id is required")
	}
	if t.BaseFare <= 0 {
		return errors.New("trip base fare must be positive")
	}
	if t.SeatsAvailable < 0 {
		return errors.New("trip seats available cannot be negative")
	}
	if _, err := t.DepartureHour(); err != nil {
		return err
	}
	return nil
}

// DepartureOn combines the trip's departure clock time with a travel date.
func (t *Trip) DepartureOn(date time.Time) time.Time {
	hour, err := t.DepartureHour()
	if err != nil {
		hour = 0
	}
	minute := 0
	if parts := strings.SplitN(t.DepartureTime, ":", 2); len(parts) == 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minute = m
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}
