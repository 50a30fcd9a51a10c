package api

import (
	"net/http"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service   booking.BookingUseCase
	converter *currency.Converter
}

type selectFlightRequest struct {
	FlightID string `json:"flight_id" binding:"required"`
}

type passengersRequest struct {
	Passengers []domain.Passenger `json:"passengers"`
	Contact    domain.Contact     `json:"contact"`
}

type cardRequest struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holder_name"`
}

type paymentRequest struct {
	Method string       `json:"method" binding:"required"`
	Card   *cardRequest `json:"card"`
}

func (r paymentRequest) toDomain() domain.PaymentMethod {
	m := domain.PaymentMethod{Kind: domain.PaymentKind(r.Method)}
	if r.Card != nil {
		m.Card = &domain.Card{
			Number:     r.Card.Number,
			Expiry:     r.Card.Expiry,
			CVV:        r.Card.CVV,
			HolderName: r.Card.HolderName,
		}
	}
	return m
}

func NewBookingHandler(service booking.BookingUseCase, converter *currency.Converter) *BookingHandler {
	return &BookingHandler{service: service, converter: converter}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/sessions/:id/booking")
	g.POST("", h.selectFlight)
	g.GET("", h.current)
	g.DELETE("", h.close)
	g.POST("/passengers", h.passengers)
	g.POST("/back", h.back)
	g.POST("/payment", h.payment)
	g.GET("/receipt", h.receipt)
	g.POST("/receipt/email", h.emailReceipt)
	g.POST("/receipt/download", h.downloadReceipt)
}

func (h *BookingHandler) selectFlight(c *gin.Context) {
	var req selectFlightRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.SelectFlight(c.Request.Context(), c.Param("id"), req.FlightID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusCreated, b)
}

func (h *BookingHandler) current(c *gin.Context) {
	b, err := h.service.Current(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, b)
}

func (h *BookingHandler) passengers(c *gin.Context) {
	var req passengersRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.SubmitPassengers(c.Request.Context(), c.Param("id"), req.Passengers, req.Contact)
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, b)
}

func (h *BookingHandler) back(c *gin.Context) {
	b, err := h.service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, b)
}

func (h *BookingHandler) payment(c *gin.Context) {
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.service.SubmitPayment(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}
	h.render(c, http.StatusOK, b)
}

func (h *BookingHandler) close(c *gin.Context) {
	if err := h.service.Close(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) receipt(c *gin.Context) {
	r, err := h.service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, r.Text())
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *BookingHandler) emailReceipt(c *gin.Context) {
	ack, err := h.service.EmailReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ack)
}

func (h *BookingHandler) downloadReceipt(c *gin.Context) {
	ack, err := h.service.DownloadReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ack)
}

// render needs the session currency for bookings that are not yet
// confirmed; confirmed ones carry their own.
func (h *BookingHandler) render(c *gin.Context, status int, b *domain.Booking) {
	code := b.Currency
	if !b.IsConfirmed() {
		sess, err := h.service.Session(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		code = sess.Currency
	}
	c.JSON(status, newBookingView(h.converter, b, code))
}
