package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// sessionReader is the slice of booking.BookingUseCase the flight
// handler needs to render prices in the visitor's currency.
type sessionReader interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

type SessionHandler struct {
	service   booking.BookingUseCase
	converter *currency.Converter
}

type currencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

func NewSessionHandler(service booking.BookingUseCase, converter *currency.Converter) *SessionHandler {
	return &SessionHandler{service: service, converter: converter}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("/sessions", h.open)
	router.GET("/sessions/:id", h.get)
	router.PUT("/sessions/:id/currency", h.setCurrency)
	router.GET("/currencies", h.currencies)
}

func (h *SessionHandler) open(c *gin.Context) {
	sess, err := h.service.Open(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSessionView(sess))
}

func (h *SessionHandler) get(c *gin.Context) {
	sess, err := h.service.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

func (h *SessionHandler) setCurrency(c *gin.Context) {
	var req currencyRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.service.SetCurrency(c.Request.Context(), c.Param("id"), req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(sess))
}

func (h *SessionHandler) currencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"base": currency.Base, "currencies": h.converter.Supported()})
}
