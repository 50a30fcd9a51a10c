package domain

import "time"

// Session holds the current search and current booking slots of one
// visitor. Both are overwritten only by explicit user actions.
type Session struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Search    *SearchCriteria `json:"search,omitempty"`
	Flights   []Flight        `json:"flights,omitempty"`
	Booking   *Booking        `json:"booking,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FindFlight looks a flight up in the stored search results.
func (s *Session) FindFlight(id string) (Flight, bool) {
	for _, f := range s.Flights {
		if f.ID == id {
			return f, true
		}
	}
	return Flight{}, false
}
