package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/skywings/internal/currency"
	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/service/flights"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type Server struct {
	flights   flights.FlightUseCase
	converter *currency.Converter
}

func NewServer(flightsUC flights.FlightUseCase, converter *currency.Converter) *Server {
	return &Server{flights: flightsUC, converter: converter}
}

type statusRequest struct {
	FlightID string `json:"flight_id"`
	Date     string `json:"date"`
}

type convertRequest struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type convertResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Display  string  `json:"display"`
}

func (s *Server) GenerateFlights(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req domain.SearchInput
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	criteria, err := req.Criteria()
	if err != nil {
		return nil, err
	}

	list, err := s.flights.Generate(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return encode(map[string]any{"flights": list})
}

func (s *Server) LookupStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req statusRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FlightID) == "" {
		verr := &domain.ValidationError{}
		verr.Add("flight_id", "is required")
		return nil, verr
	}
	date, err := domain.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	st, err := s.flights.Status(ctx, req.FlightID, date)
	if err != nil {
		return nil, err
	}
	return encode(st)
}

func (s *Server) ConvertPrice(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req convertRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if req.Amount == nil {
		verr := &domain.ValidationError{}
		verr.Add("amount", "is required")
		return nil, verr
	}

	info, err := s.converter.Lookup(req.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := s.converter.Convert(*req.Amount, info.Code)
	if err != nil {
		return nil, err
	}
	display, err := s.converter.Format(amount, info.Code)
	if err != nil {
		return nil, err
	}
	return encode(convertResponse{Amount: amount, Currency: info.Code, Display: display})
}

func decode(in *structpb.Struct, v any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("malformed request: %v", err))
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("build response struct: %w", err)
	}
	return out, nil
}

var _ FlightsServer = (*Server)(nil)
