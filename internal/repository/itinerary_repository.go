package repository

import (
	"context"
	"errors"

	"wanderplan/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var itineraryColumns = []string{"id", "trip_id", "day_number", "date", "activities"}

type ItineraryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewItineraryRepository(db *pgxpool.Pool, logger *zap.Logger) *ItineraryRepository {
	return &ItineraryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ItineraryRepository) Create(ctx context.Context, day *models.ItineraryDay) error {
	query := squirrel.Insert("itinerary_days").
		Columns(itineraryColumns...).
		Values(day.ID, day.TripID, day.DayNumber, day.Date, day.Activities).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ItineraryRepository) GetByID(ctx context.Context, id, tripID uuid.UUID) (*models.ItineraryDay, error) {
	query := squirrel.Select(itineraryColumns...).
		From("itinerary_days").
		Where(squirrel.Eq{"id": id, "trip_id": tripID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var day models.ItineraryDay
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&day.ID, &day.TripID, &day.DayNumber, &day.Date, &day.Activities,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &day, nil
}

func (r *ItineraryRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*models.ItineraryDay, error) {
	query := squirrel.Select(itineraryColumns...).
		From("itinerary_days").
		Where(squirrel.Eq{"trip_id": tripID}).
		OrderBy("day_number ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []*models.ItineraryDay
	for rows.Next() {
		var day models.ItineraryDay
		if err := rows.Scan(&day.ID, &day.TripID, &day.DayNumber, &day.Date, &day.Activities); err != nil {
			return nil, err
		}
		days = append(days, &day)
	}

	return days, rows.Err()
}

func (r *ItineraryRepository) Update(ctx context.Context, day *models.ItineraryDay) error {
	query := squirrel.Update("itinerary_days").
		Set("day_number", day.DayNumber).
		Set("date", day.Date).
		Set("activities", day.Activities).
		Where(squirrel.Eq{"id": day.ID, "trip_id": day.TripID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItineraryRepository) Delete(ctx context.Context, id, tripID uuid.UUID) error {
	query := squirrel.Delete("itinerary_days").
		Where(squirrel.Eq{"id": id, "trip_id": tripID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
