package models

// Seat represents one seat in a trip's seat map. Occupancy comes from an
// external provider and does not change for the lifetime of the map.
type Seat struct {
	Number      string `json:"number"` // row letter + column digit, e.g. "C2"
	RowIndex    int    `json:"row_index"`
	ColumnIndex int    `json:"column_index"` // 0-3 in a 2+2 layout
	Occupied    bool   `json:"occupied"`
	PriceTier   int64  `json:"price_tier"` // per-seat price in whole currency units
}

// IsWindow reports whether the seat sits against a window (outer columns).
func (s *Seat) IsWindow() bool {
	return s.ColumnIndex == 0 || s.ColumnIndex == 3
}

// IsAisle reports whether the seat sits on the aisle (inner columns).
func (s *Seat) IsAisle() bool {
	return s.ColumnIndex == 1 || s.ColumnIndex == 2
}

// SeatMap is the full per-trip seat layout with occupancy and price tiers.
type SeatMap struct {
	TripID string `json:"trip_id"`
	Rows   int    `json:"rows"`
	Seats  []Seat `json:"seats"` // ordered row-major, A1..A4, B1..B4, ...
}

// SeatByNumber looks up a seat by its display number.
func (m *SeatMap) SeatByNumber(number string) (*Seat, bool) {
	for i := range m.Seats {
		if m.Seats[i].Number == number {
			return &m.Seats[i], true
		}
	}
	return nil, false
}

// OccupiedCount returns how many seats in the map are occupied.
func (m *SeatMap) OccupiedCount() int {
	count := 0
	for i := range m.Seats {
		if m.Seats[i].Occupied {
			count++
		}
	}
	return count
}

// Row returns the seats of one zero-indexed row in column order.
func (m *SeatMap) Row(rowIndex int) []Seat {
	var row []Seat
	for _, seat := range m.Seats {
		if seat.RowIndex == rowIndex {
			row = append(row, seat)
		}
	}
	return row
}

// SeatSelection is the ordered set of seat numbers the user picked. Order is
// significant: passenger details are captured index-aligned with it.
type SeatSelection []string

// Contains reports whether the selection already includes the seat.
func (s SeatSelection) Contains(number string) bool {
	for _, n := range s {
		if n == number {
			return true
		}
	}
	return false
}

// Without returns a copy of the selection with the seat removed.
func (s SeatSelection) Without(number string) SeatSelection {
	out := make(SeatSelection, 0, len(s))
	for _, n := range s {
		if n != number {
			out = append(out, n)
		}
	}
	return out
}

// Remaining returns how many more seats must be picked to reach the limit.
func (s SeatSelection) Remaining(limit int) int {
	if remaining := limit - len(s); remaining > 0 {
		return remaining
	}
	return 0
}

// Total sums the price tiers of the selected seats.
func (s SeatSelection) Total(seatMap *SeatMap) int64 {
	var total int64
	for _, n := range s {
		if seat, ok := seatMap.SeatByNumber(n); ok {
			total += seat.PriceTier
		}
	}
	return total
}
