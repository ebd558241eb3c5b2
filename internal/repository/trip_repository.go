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

var tripColumns = []string{
	"id", "title", "destination", "start_date", "end_date", "description",
	"lat", "lon", "budget_total", "budget_currency", "budget_estimates", "created_at",
}

type TripRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTripRepository(db *pgxpool.Pool, logger *zap.Logger) *TripRepository {
	return &TripRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := squirrel.Insert("trips").
		Columns(tripColumns...).
		Values(trip.ID, trip.Title, trip.Destination, trip.StartDate, trip.EndDate, trip.Description,
			trip.Lat, trip.Lon, trip.BudgetTotal, trip.BudgetCurrency, trip.BudgetEstimates, trip.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	query := squirrel.Select(tripColumns...).
		From("trips").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&trip.ID, &trip.Title, &trip.Destination, &trip.StartDate, &trip.EndDate, &trip.Description,
		&trip.Lat, &trip.Lon, &trip.BudgetTotal, &trip.BudgetCurrency, &trip.BudgetEstimates, &trip.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) List(ctx context.Context) ([]*models.Trip, error) {
	query := squirrel.Select(tripColumns...).
		From("trips").
		OrderBy("created_at DESC").
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

	var trips []*models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(
			&trip.ID, &trip.Title, &trip.Destination, &trip.StartDate, &trip.EndDate, &trip.Description,
			&trip.Lat, &trip.Lon, &trip.BudgetTotal, &trip.BudgetCurrency, &trip.BudgetEstimates, &trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// Update persists the trip's mutable descriptive fields.
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	query := squirrel.Update("trips").
		Set("title", trip.Title).
		Set("destination", trip.Destination).
		Set("start_date", trip.StartDate).
		Set("end_date", trip.EndDate).
		Set("description", trip.Description).
		Where(squirrel.Eq{"id": trip.ID}).
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

// UpdateBudget persists the trip's budget configuration and the last AI
// estimate blob.
func (r *TripRepository) UpdateBudget(ctx context.Context, trip *models.Trip) error {
	query := squirrel.Update("trips").
		Set("budget_total", trip.BudgetTotal).
		Set("budget_currency", trip.BudgetCurrency).
		Set("budget_estimates", trip.BudgetEstimates).
		Where(squirrel.Eq{"id": trip.ID}).
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

// Delete removes the trip; expenses, itinerary days and chat messages
// cascade at the database level.
func (r *TripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("trips").
		Where(squirrel.Eq{"id": id}).
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
