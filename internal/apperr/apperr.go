// Package apperr translates domain errors into transport status: gRPC
// codes with field details, and the HTTP status derived from them.
package apperr

import (
	"context"
	"errors"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const internalMessage = "internal error"

func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case domain.IsValidation(err), errors.Is(err, domain.ErrUnsupportedCurrency):
		return codes.InvalidArgument
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrNoActiveBooking):
		return codes.NotFound
	case errors.Is(err, domain.ErrNoSearch),
		errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrBookingFinalized),
		errors.Is(err, domain.ErrNotConfirmed):
		return codes.FailedPrecondition
	case errors.Is(err, domain.ErrOperationInFlight):
		return codes.Aborted
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// HTTPStatus follows the grpc-gateway code to status table, so both
// transports agree on every error.
func HTTPStatus(err error) int {
	return runtime.HTTPStatusFromCode(Code(err))
}

// Message hides the text of unexpected errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if Code(err) == codes.Internal {
		return internalMessage
	}
	return err.Error()
}

// Violations lists the field problems carried by err, if any.
func Violations(err error) []domain.FieldViolation {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Violations
	}
	if errors.Is(err, domain.ErrUnsupportedCurrency) {
		return []domain.FieldViolation{{Field: "currency", Description: "is not supported"}}
	}
	return nil
}

// GRPCError converts err into a status error. Field violations travel
// as an errdetails.BadRequest detail.
func GRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	st := status.New(Code(err), Message(err))
	violations := Violations(err)
	if len(violations) == 0 {
		return st.Err()
	}

	br := &errdetails.BadRequest{}
	for _, v := range violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Description,
		})
	}
	detailed, derr := st.WithDetails(br)
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}
