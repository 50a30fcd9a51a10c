package flights

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/random"
)

const statusDelay = 45 * time.Minute

var statusCodes = []domain.FlightStatusCode{domain.StatusOnTime, domain.StatusDelayed, domain.StatusCancelled}

type StatusLookup struct {
	rnd random.Source
}

func NewStatusLookup(rnd random.Source) *StatusLookup {
	return &StatusLookup{rnd: rnd}
}

// Lookup never fails: every flight id gets a synthesized status.
func (l *StatusLookup) Lookup(flightID string, date time.Time) domain.FlightStatus {
	code := statusCodes[l.rnd.IntN(len(statusCodes))]
	gate := fmt.Sprintf("B%d", l.rnd.IntN(20)+1)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	scheduled := day.Add(14*time.Hour + 30*time.Minute)

	st := domain.FlightStatus{
		FlightID:           strings.ToUpper(strings.TrimSpace(flightID)),
		Date:               day,
		Status:             code,
		ScheduledDeparture: scheduled,
		EstimatedDeparture: scheduled,
		EstimatedArrival:   day.Add(18*time.Hour + 45*time.Minute),
		Gate:               gate,
	}

	switch code {
	case domain.StatusOnTime:
		st.StatusText = "On Time"
	case domain.StatusDelayed:
		st.Delay = statusDelay
		st.DelayMinutes = int(statusDelay.Minutes())
		st.EstimatedDeparture = scheduled.Add(statusDelay)
		st.StatusText = fmt.Sprintf("Delayed by %d minutes", int(statusDelay.Minutes()))
	case domain.StatusCancelled:
		st.StatusText = "Cancelled"
	}
	return st
}
