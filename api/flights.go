package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service   flights.FlightUseCase
	sessions  sessionReader
	converter *currency.Converter
}

type flightsResponse struct {
	Search   *domain.SearchCriteria `json:"search,omitempty"`
	Currency string                 `json:"currency"`
	Count    int                    `json:"count"`
	Flights  []flightView           `json:"flights"`
}

func NewFlightHandler(service flights.FlightUseCase, sessions sessionReader, converter *currency.Converter) *FlightHandler {
	return &FlightHandler{service: service, sessions: sessions, converter: converter}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/sessions/:id/search", h.search)
	router.GET("/sessions/:id/flights", h.results)
	router.GET("/flights/status", h.status)
}

func (h *FlightHandler) search(c *gin.Context) {
	var in domain.SearchInput
	if !bindJSON(c, &in) {
		return
	}
	criteria, err := in.Criteria()
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	results, err := h.service.Search(ctx, c.Param("id"), criteria)
	if err != nil {
		writeError(c, err)
		return
	}
	sess, err := h.sessions.Session(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, flightsResponse{
		Search:   &criteria,
		Currency: sess.Currency,
		Count:    len(results),
		Flights:  newFlightViews(h.converter, results, sess.Currency),
	})
}

func (h *FlightHandler) results(c *gin.Context) {
	ctx := c.Request.Context()
	bucket := domain.TimeOfDay(strings.ToLower(strings.TrimSpace(c.Query("time_of_day"))))

	results, err := h.service.Results(ctx, c.Param("id"), bucket)
	if err != nil {
		writeError(c, err)
		return
	}
	sess, err := h.sessions.Session(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, flightsResponse{
		Search:   sess.Search,
		Currency: sess.Currency,
		Count:    len(results),
		Flights:  newFlightViews(h.converter, results, sess.Currency),
	})
}

func (h *FlightHandler) status(c *gin.Context) {
	var date time.Time
	if raw := c.Query("date"); strings.TrimSpace(raw) != "" {
		d, err := domain.ParseDate("date", raw)
		if err != nil {
			writeError(c, err)
			return
		}
		date = d
	}

	st, err := h.service.Status(c.Request.Context(), c.Query("flight"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
