package domain

import "time"

type FlightStatusCode string

const (
	StatusOnTime    FlightStatusCode = "on-time"
	StatusDelayed   FlightStatusCode = "delayed"
	StatusCancelled FlightStatusCode = "cancelled"
)

// FlightStatus is recomputed on every lookup.
type FlightStatus struct {
	FlightID           string           `json:"flight_id"`
	Date               time.Time        `json:"date"`
	Status             FlightStatusCode `json:"status"`
	StatusText         string           `json:"status_text"`
	Delay              time.Duration    `json:"-"`
	DelayMinutes       int              `json:"delay_minutes"`
	ScheduledDeparture time.Time        `json:"scheduled_departure"`
	EstimatedDeparture time.Time        `json:"estimated_departure"`
	EstimatedArrival   time.Time        `json:"estimated_arrival"`
	Gate               string           `json:"gate"`
}
