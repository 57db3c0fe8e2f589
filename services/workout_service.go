package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"growthTrackerAPI/internal/types/workout"
)

const uniqueViolation = "23505"

const workoutColumns = `date, workout_type, workout_done, duration_minutes, intensity, notes, created_at, updated_at`

type WorkoutService struct {
	db *pgxpool.Pool
}

func NewWorkoutService(db *pgxpool.Pool) *WorkoutService {
	return &WorkoutService{db: db}
}

func scanWorkout(row pgx.Row) (*workout.Entry, error) {
	e := &workout.Entry{}
	err := row.Scan(
		&e.Date,
		&e.WorkoutType,
		&e.WorkoutDone,
		&e.DurationMinutes,
		&e.Intensity,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new entry and fails with ErrConflict when the date is
// already logged. The primary key on date is what enforces this, so two
// concurrent creates for the same day cannot both succeed.
func (s *WorkoutService) Create(ctx context.Context, req *workout.CreateRequest) (*workout.Entry, error) {
	now := time.Now().UTC()

	query := `
	INSERT INTO workout_entries (` + workoutColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	RETURNING ` + workoutColumns

	entry, err := scanWorkout(s.db.QueryRow(ctx, query,
		req.ParsedDate(), req.WorkoutType, req.Done(), req.DurationMinutes, req.Intensity, req.Notes, now))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("workout entry for %s: %w", req.Date, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create workout entry: %w", err)
	}

	return entry, nil
}

// Upsert creates the entry or replaces every mutable field of an existing
// one. created_at survives the conflict branch; updated_at is refreshed
// either way. Safe to repeat with the same payload.
func (s *WorkoutService) Upsert(ctx context.Context, req *workout.CreateRequest) (*workout.Entry, error) {
	now := time.Now().UTC()

	query := `
	INSERT INTO workout_entries (` + workoutColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	ON CONFLICT (date)
	DO UPDATE SET
		workout_type = EXCLUDED.workout_type,
		workout_done = EXCLUDED.workout_done,
		duration_minutes = EXCLUDED.duration_minutes,
		intensity = EXCLUDED.intensity,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at
	RETURNING ` + workoutColumns

	entry, err := scanWorkout(s.db.QueryRow(ctx, query,
		req.ParsedDate(), req.WorkoutType, req.Done(), req.DurationMinutes, req.Intensity, req.Notes, now))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert workout entry: %w", err)
	}

	return entry, nil
}

func (s *WorkoutService) Get(ctx context.Context, date time.Time) (*workout.Entry, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_entries WHERE date = $1`

	entry, err := scanWorkout(s.db.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workout entry for %s: %w", date.Format("2006-01-02"), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout entry: %w", err)
	}

	return entry, nil
}

// Update merges the provided fields into an existing entry. Omitted fields
// keep their stored values; the date itself cannot change.
func (s *WorkoutService) Update(ctx context.Context, date time.Time, req *workout.UpdateRequest) (*workout.Entry, error) {
	now := time.Now().UTC()

	query := `
	UPDATE workout_entries SET
		workout_type = COALESCE($2, workout_type),
		workout_done = COALESCE($3, workout_done),
		duration_minutes = COALESCE($4, duration_minutes),
		intensity = COALESCE($5, intensity),
		notes = COALESCE($6, notes),
		updated_at = $7
	WHERE date = $1
	RETURNING ` + workoutColumns

	entry, err := scanWorkout(s.db.QueryRow(ctx, query,
		date, req.WorkoutType, req.WorkoutDone, req.DurationMinutes, req.Intensity, req.Notes, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workout entry for %s: %w", date.Format("2006-01-02"), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update workout entry: %w", err)
	}

	return entry, nil
}

func (s *WorkoutService) Delete(ctx context.Context, date time.Time) error {
	result, err := s.db.Exec(ctx, `DELETE FROM workout_entries WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete workout entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("workout entry for %s: %w", date.Format("2006-01-02"), ErrNotFound)
	}

	return nil
}

// History lists entries newest first, optionally restricted to the closed
// interval [start, end]. Either bound may be nil. An empty result is not an
// error.
func (s *WorkoutService) History(ctx context.Context, start, end *time.Time) ([]*workout.Entry, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_entries`
	args := []any{}

	switch {
	case start != nil && end != nil:
		query += ` WHERE date >= $1 AND date <= $2`
		args = append(args, *start, *end)
	case start != nil:
		query += ` WHERE date >= $1`
		args = append(args, *start)
	case end != nil:
		query += ` WHERE date <= $1`
		args = append(args, *end)
	}
	query += ` ORDER BY date DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout history: %w", err)
	}
	defer rows.Close()

	entries := []*workout.Entry{}
	for rows.Next() {
		entry, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read workout history: %w", err)
	}

	return entries, nil
}
