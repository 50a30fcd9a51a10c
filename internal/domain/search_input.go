package domain

import (
	"strings"
	"time"
)

// SearchInput is the wire shape of a search form: dates are
// YYYY-MM-DD strings, cabin class and trip type default to economy and
// one way.
type SearchInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DepartDate  string `json:"depart_date"`
	ReturnDate  string `json:"return_date,omitempty"`
	Passengers  int    `json:"passengers"`
	CabinClass  string `json:"cabin_class,omitempty"`
	TripType    string `json:"trip_type,omitempty"`
}

// Criteria parses and validates the input. Every problem is reported in
// one ValidationError.
func (in SearchInput) Criteria() (SearchCriteria, error) {
	c := SearchCriteria{
		Origin:      strings.TrimSpace(in.Origin),
		Destination: strings.TrimSpace(in.Destination),
		Passengers:  in.Passengers,
		CabinClass:  CabinClass(strings.ToLower(strings.TrimSpace(in.CabinClass))),
		TripType:    TripType(strings.ToLower(strings.TrimSpace(in.TripType))),
	}
	if c.CabinClass == "" {
		c.CabinClass = CabinEconomy
	}
	if c.TripType == "" {
		c.TripType = TripOneWay
	}

	dateErrs := &ValidationError{}
	if in.DepartDate != "" {
		d, err := time.Parse(DateLayout, in.DepartDate)
		if err != nil {
			dateErrs.Add("depart_date", "must be a date formatted as YYYY-MM-DD")
		} else {
			c.DepartDate = d
		}
	}
	if in.ReturnDate != "" {
		d, err := time.Parse(DateLayout, in.ReturnDate)
		if err != nil {
			dateErrs.Add("return_date", "must be a date formatted as YYYY-MM-DD")
		} else {
			c.ReturnDate = &d
		}
	}
	if c.TripType == TripOneWay {
		c.ReturnDate = nil
	}

	if err := c.Validate(); err != nil {
		verr, ok := err.(*ValidationError)
		if !ok {
			return SearchCriteria{}, err
		}
		for _, v := range verr.Violations {
			if !dateErrs.has(v.Field) {
				dateErrs.Add(v.Field, v.Description)
			}
		}
	}
	if err := dateErrs.OrNil(); err != nil {
		return SearchCriteria{}, err
	}
	return c, nil
}

func (e *ValidationError) has(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// ParseDate reads a YYYY-MM-DD query value.
func ParseDate(field, value string) (time.Time, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "is required")
		return time.Time{}, verr
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		verr.Add(field, "must be a date formatted as YYYY-MM-DD")
		return time.Time{}, verr
	}
	return d, nil
}
