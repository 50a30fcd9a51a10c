package api

import (
	_ "embed"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/service/booking"
	"github.com/Domenick1991/skywings/internal/service/flights"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//go:embed openapi.json
var openAPIDocument []byte

type RouterConfig struct {
	AllowedOrigins []string
	DisableDocs    bool
}

// NewRouter wires every handler under /api/v1 together with the
// middleware chain and, unless disabled, the API docs.
func NewRouter(
	cfg RouterConfig,
	log *zap.Logger,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	converter *currency.Converter,
) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	r.Use(RequestID())
	r.Use(Logger(log))
	r.Use(Recovery(log))

	v1 := r.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "skywings"})
	})
	NewSessionHandler(bookingSvc, converter).Register(v1)
	NewFlightHandler(flightSvc, bookingSvc, converter).Register(v1)
	NewBookingHandler(bookingSvc, converter).Register(v1)

	if !cfg.DisableDocs {
		r.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPIDocument)
		})
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// useJSONFieldNames makes binding violations name the json field.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}
