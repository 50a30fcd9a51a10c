package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skywings/internal/apperr"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
	RequestID  string                  `json:"request_id,omitempty"`
}

func writeError(c *gin.Context, err error) {
	if apperr.HTTPStatus(err) == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), errorResponse{
		Error:      apperr.Message(err),
		Violations: apperr.Violations(err),
		RequestID:  c.GetString(requestIDKey),
	})
}

// bindJSON decodes the body and reports binding failures as field
// violations. It writes the error response itself.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	verr := &domain.ValidationError{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "required":
				verr.Add(fe.Field(), "is required")
			case "oneof":
				verr.Add(fe.Field(), "must be one of: "+fe.Param())
			default:
				verr.Add(fe.Field(), "is invalid")
			}
		}
		return verr
	}
	verr.Add("body", "must be a valid JSON document")
	return verr
}
