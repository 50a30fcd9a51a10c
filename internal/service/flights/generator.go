package flights

import (
	"fmt"
	"slices"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/random"
)

const (
	resultCount    = 10
	firstFlightNum = 1000
)

var defaultAirlines = []string{"SkyWings", "AirGlobal", "JetStream", "CloudNine", "WingSpan"}

// Generator synthesizes mock search results. Every call draws fresh
// values from its source.
type Generator struct {
	rnd      random.Source
	airlines []string
}

func NewGenerator(rnd random.Source) *Generator {
	return &Generator{rnd: rnd, airlines: defaultAirlines}
}

// Generate returns ten flights sorted by base price; ties keep
// generation order.
func (g *Generator) Generate(criteria domain.SearchCriteria) []domain.Flight {
	day := criteria.DepartDate
	multiplier := criteria.CabinClass.FareMultiplier()

	flights := make([]domain.Flight, 0, resultCount)
	for i := 0; i < resultCount; i++ {
		hour := 6 + g.rnd.IntN(16)
		minute := g.rnd.IntN(4) * 15
		duration := 2 + g.rnd.Float64()*10
		price := (200 + g.rnd.Float64()*800) * multiplier
		airline := g.airlines[g.rnd.IntN(len(g.airlines))]
		stops := 0
		if g.rnd.Float64() > 0.7 {
			stops = 1
		}

		departure := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
		flights = append(flights, domain.Flight{
			ID:            fmt.Sprintf("SW%d", firstFlightNum+i),
			Airline:       airline,
			Origin:        criteria.Origin,
			Destination:   criteria.Destination,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(duration * float64(time.Hour))),
			DurationHours: duration,
			BasePrice:     price,
			Stops:         stops,
			TimeOfDay:     domain.TimeOfDayFor(hour),
			CabinClass:    criteria.CabinClass,
		})
	}

	slices.SortStableFunc(flights, func(a, b domain.Flight) int {
		switch {
		case a.BasePrice < b.BasePrice:
			return -1
		case a.BasePrice > b.BasePrice:
			return 1
		}
		return 0
	})
	return flights
}

// FilterByTimeOfDay keeps the order of flights; TimeOfDayAll and the
// empty bucket pass everything.
func FilterByTimeOfDay(flights []domain.Flight, bucket domain.TimeOfDay) []domain.Flight {
	if bucket == "" || bucket == domain.TimeOfDayAll {
		return flights
	}
	out := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if f.TimeOfDay == bucket {
			out = append(out, f)
		}
	}
	return out
}
