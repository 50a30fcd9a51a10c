package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate = validator.New()

// SearchCriteria is immutable once submitted.
type SearchCriteria struct {
	Origin      string     `json:"origin" validate:"required"`
	Destination string     `json:"destination" validate:"required"`
	DepartDate  time.Time  `json:"depart_date" validate:"required"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Passengers  int        `json:"passengers" validate:"min=1"`
	CabinClass  CabinClass `json:"cabin_class" validate:"oneof=economy business first"`
	TripType    TripType   `json:"trip_type" validate:"oneof=oneway roundtrip"`
}

// Validate checks field constraints and the round-trip date ordering.
func (c SearchCriteria) Validate() error {
	verr := &ValidationError{}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Add(jsonFieldName(fe.Field()), describeTag(fe))
		}
	}

	if c.TripType == TripRoundTrip {
		switch {
		case c.ReturnDate == nil:
			verr.Add("return_date", "is required for round trips")
		case c.ReturnDate.Before(c.DepartDate):
			verr.Add("return_date", "must not be before the departure date")
		}
	}

	if strings.TrimSpace(c.Origin) != "" && strings.EqualFold(strings.TrimSpace(c.Origin), strings.TrimSpace(c.Destination)) {
		verr.Add("destination", "must differ from origin")
	}

	return verr.OrNil()
}

var searchFieldNames = map[string]string{
	"Origin":      "origin",
	"Destination": "destination",
	"DepartDate":  "depart_date",
	"Passengers":  "passengers",
	"CabinClass":  "cabin_class",
	"TripType":    "trip_type",
}

func jsonFieldName(field string) string {
	if name, ok := searchFieldNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
