package service

import (
	"context"
	"errors"

	"wanderplan/internal/dto"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItineraryService struct {
	trips  *repository.TripRepository
	days   *repository.ItineraryRepository
	logger *zap.Logger
}

func NewItineraryService(trips *repository.TripRepository, days *repository.ItineraryRepository, logger *zap.Logger) *ItineraryService {
	return &ItineraryService{
		trips:  trips,
		days:   days,
		logger: logger,
	}
}

// List returns a trip's itinerary ordered by day number.
func (s *ItineraryService) List(ctx context.Context, tripID uuid.UUID) ([]dto.DayResponse, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dayToResponse(d))
	}
	return out, nil
}

func (s *ItineraryService) AddDay(ctx context.Context, tripID uuid.UUID, req dto.DayRequest) (*dto.DayResponse, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	day := &models.ItineraryDay{
		ID:         uuid.New(),
		TripID:     tripID,
		DayNumber:  req.DayNumber,
		Date:       req.Date,
		Activities: req.Activities,
	}
	if day.Activities == nil {
		day.Activities = []models.Activity{}
	}
	if err := s.days.Create(ctx, day); err != nil {
		return nil, err
	}
	resp := dayToResponse(day)
	return &resp, nil
}

// UpdateDay replaces the day's number, date and activity list.
func (s *ItineraryService) UpdateDay(ctx context.Context, tripID, dayID uuid.UUID, req dto.DayRequest) (*dto.DayResponse, error) {
	day, err := s.days.GetByID(ctx, dayID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}

	day.DayNumber = req.DayNumber
	day.Date = req.Date
	day.Activities = req.Activities
	if day.Activities == nil {
		day.Activities = []models.Activity{}
	}
	if err := s.days.Update(ctx, day); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	resp := dayToResponse(day)
	return &resp, nil
}

func (s *ItineraryService) DeleteDay(ctx context.Context, tripID, dayID uuid.UUID) error {
	if err := s.days.Delete(ctx, dayID, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDayNotFound
		}
		return err
	}
	return nil
}

func dayToResponse(d *models.ItineraryDay) dto.DayResponse {
	activities := d.Activities
	if activities == nil {
		activities = []models.Activity{}
	}
	return dto.DayResponse{
		ID:         d.ID.String(),
		DayNumber:  d.DayNumber,
		Date:       d.Date,
		Activities: activities,
	}
}
