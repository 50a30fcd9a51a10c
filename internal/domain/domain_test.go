package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		Origin:      "Lagos",
		Destination: "London",
		DepartDate:  time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Passengers:  2,
		CabinClass:  CabinEconomy,
		TripType:    TripOneWay,
	}
}

func TestSearchCriteria_Validate_OK(t *testing.T) {
	assert.NoError(t, validCriteria().Validate())
}

func TestSearchCriteria_Validate_MissingFields(t *testing.T) {
	c := SearchCriteria{CabinClass: "premium", TripType: TripOneWay}

	err := c.Validate()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"origin", "destination", "depart_date", "passengers", "cabin_class"}, fields)
}

func TestSearchCriteria_Validate_RoundTripNeedsOrderedReturn(t *testing.T) {
	c := validCriteria()
	c.TripType = TripRoundTrip

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "return_date is required")

	before := c.DepartDate.AddDate(0, 0, -1)
	c.ReturnDate = &before
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be before")

	after := c.DepartDate.AddDate(0, 0, 7)
	c.ReturnDate = &after
	assert.NoError(t, c.Validate())
}

func TestSearchCriteria_Validate_SameCity(t *testing.T) {
	c := validCriteria()
	c.Destination = " lagos "

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTimeOfDayFor(t *testing.T) {
	assert.Equal(t, TimeOfDayMorning, TimeOfDayFor(6))
	assert.Equal(t, TimeOfDayMorning, TimeOfDayFor(11))
	assert.Equal(t, TimeOfDayAfternoon, TimeOfDayFor(12))
	assert.Equal(t, TimeOfDayAfternoon, TimeOfDayFor(16))
	assert.Equal(t, TimeOfDayEvening, TimeOfDayFor(17))
	assert.Equal(t, TimeOfDayEvening, TimeOfDayFor(21))
}

func TestCabinClass_FareMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, CabinEconomy.FareMultiplier())
	assert.Equal(t, 2.0, CabinBusiness.FareMultiplier())
	assert.Equal(t, 3.0, CabinFirst.FareMultiplier())
}

func TestCardFormatting(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "4111 1111 11", FormatCardNumber("4111-1111 11"))
	assert.Equal(t, "12/27", FormatExpiry("1227"))
	assert.Equal(t, "12/27", FormatExpiry("12/275"))
	assert.Equal(t, "1", FormatExpiry("1"))
	assert.Equal(t, "123", FormatCVV("12a34"))
	assert.Equal(t, "************1111", Card{Number: "4111 1111 1111 1111"}.MaskedNumber())
}

func TestValidationError_OrNil(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.OrNil())

	verr.Add("contact.email", "is required")
	err := verr.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: contact.email is required", err.Error())
}

func TestSession_FindFlight(t *testing.T) {
	s := &Session{Flights: []Flight{{ID: "SW1000"}, {ID: "SW1001"}}}

	f, ok := s.FindFlight("SW1001")
	assert.True(t, ok)
	assert.Equal(t, "SW1001", f.ID)

	_, ok = s.FindFlight("SW9999")
	assert.False(t, ok)
}

func TestSearchInput_Criteria(t *testing.T) {
	c, err := SearchInput{
		Origin:      " Lagos ",
		Destination: "London",
		DepartDate:  "2026-11-02",
		ReturnDate:  "2026-11-09",
		Passengers:  2,
		CabinClass:  "Business",
		TripType:    "roundtrip",
	}.Criteria()

	require.NoError(t, err)
	assert.Equal(t, "Lagos", c.Origin)
	assert.Equal(t, CabinBusiness, c.CabinClass)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), c.DepartDate)
	require.NotNil(t, c.ReturnDate)
	assert.Equal(t, 9, c.ReturnDate.Day())
}

func TestSearchInput_Defaults(t *testing.T) {
	c, err := SearchInput{Origin: "Lagos", Destination: "Accra", DepartDate: "2026-11-02", ReturnDate: "2026-11-09", Passengers: 1}.Criteria()

	require.NoError(t, err)
	assert.Equal(t, CabinEconomy, c.CabinClass)
	assert.Equal(t, TripOneWay, c.TripType)
	assert.Nil(t, c.ReturnDate)
}

func TestSearchInput_BadDate(t *testing.T) {
	_, err := SearchInput{Origin: "Lagos", Destination: "Accra", DepartDate: "02/11/2026", Passengers: 1}.Criteria()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "depart_date", verr.Violations[0].Field)
	assert.Contains(t, verr.Violations[0].Description, "YYYY-MM-DD")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("date", "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, 16, d.Day())

	_, err = ParseDate("date", "")
	assert.True(t, IsValidation(err))
	_, err = ParseDate("date", "tomorrow")
	assert.True(t, IsValidation(err))
}
