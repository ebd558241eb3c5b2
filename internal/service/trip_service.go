package service

import (
	"context"
	"errors"
	"time"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Geocoder resolves a destination name to coordinates; a miss is (nil, nil).
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*dto.GeocodeResponse, error)
}

type TripService struct {
	trips    *repository.TripRepository
	geocoder Geocoder
	logger   *zap.Logger
}

func NewTripService(trips *repository.TripRepository, geocoder Geocoder, logger *zap.Logger) *TripService {
	return &TripService{
		trips:    trips,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Create stores a new trip. The destination is geocoded best-effort: a
// geocoding failure leaves the coordinates unset and is not surfaced.
func (s *TripService) Create(ctx context.Context, req dto.CreateTripRequest) (*dto.TripResponse, error) {
	trip := &models.Trip{
		ID:             uuid.New(),
		Title:          req.Title,
		Destination:    req.Destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Description:    req.Description,
		BudgetCurrency: "USD",
		CreatedAt:      time.Now().UTC(),
	}

	geo, err := s.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		s.logger.Warn("Geocoding failed, creating trip without coordinates",
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
	} else if geo != nil {
		lat, lon := geo.Lat, geo.Lon
		trip.Lat, trip.Lon = &lat, &lon
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	resp := tripToResponse(trip)
	return &resp, nil
}

func (s *TripService) List(ctx context.Context) ([]dto.TripResponse, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripToResponse(t))
	}
	return out, nil
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID) (*dto.TripResponse, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	resp := tripToResponse(trip)
	return &resp, nil
}

// Update applies a partial update; absent fields are untouched.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTripRequest) (*dto.TripResponse, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	resp := tripToResponse(trip)
	return &resp, nil
}

// Delete removes the trip and, through database cascades, its expenses,
// itinerary days and chat messages.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

func tripToResponse(t *models.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Description: t.Description,
		Lat:         t.Lat,
		Lon:         t.Lon,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
