package domain

import "time"

type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// FareMultiplier is the factor applied to an economy fare draw.
func (c CabinClass) FareMultiplier() float64 {
	switch c {
	case CabinBusiness:
		return 2
	case CabinFirst:
		return 3
	default:
		return 1
	}
}

type TripType string

const (
	TripOneWay    TripType = "oneway"
	TripRoundTrip TripType = "roundtrip"
)

type TimeOfDay string

const (
	TimeOfDayAll       TimeOfDay = "all"
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

// TimeOfDayFor buckets a departure hour.
func TimeOfDayFor(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return TimeOfDayMorning
	case hour < 17:
		return TimeOfDayAfternoon
	default:
		return TimeOfDayEvening
	}
}

type Flight struct {
	ID            string     `json:"id"`
	Airline       string     `json:"airline"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureTime time.Time  `json:"departure_time"`
	ArrivalTime   time.Time  `json:"arrival_time"`
	DurationHours float64    `json:"duration_hours"`
	BasePrice     float64    `json:"base_price"`
	Stops         int        `json:"stops"`
	TimeOfDay     TimeOfDay  `json:"time_of_day"`
	CabinClass    CabinClass `json:"cabin_class"`
}
