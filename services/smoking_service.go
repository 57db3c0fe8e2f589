package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"growthTrackerAPI/internal/types/smoking"
)

const smokingColumns = `date, cigarette_count, location, remarks, created_at`

// SmokingService tracks relapse days. There is deliberately no partial
// update: a smoking entry is small enough that corrections go through
// Upsert. A row's existence marks the day as a relapse even when
// cigarette_count is zero.
type SmokingService struct {
	db *pgxpool.Pool
}

func NewSmokingService(db *pgxpool.Pool) *SmokingService {
	return &SmokingService{db: db}
}

func scanSmoking(row pgx.Row) (*smoking.Entry, error) {
	e := &smoking.Entry{}
	err := row.Scan(
		&e.Date,
		&e.CigaretteCount,
		&e.Location,
		&e.Remarks,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SmokingService) Create(ctx context.Context, req *smoking.CreateRequest) (*smoking.Entry, error) {
	query := `
	INSERT INTO smoking_entries (` + smokingColumns + `)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + smokingColumns

	entry, err := scanSmoking(s.db.QueryRow(ctx, query,
		req.ParsedDate(), *req.CigaretteCount, req.Location, req.Remarks, time.Now().UTC()))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("smoking entry for %s: %w", req.Date, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create smoking entry: %w", err)
	}

	return entry, nil
}

// Upsert creates or replaces the entry for the date. created_at is set only
// on first insert and never refreshed afterwards.
func (s *SmokingService) Upsert(ctx context.Context, req *smoking.CreateRequest) (*smoking.Entry, error) {
	query := `
	INSERT INTO smoking_entries (` + smokingColumns + `)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (date)
	DO UPDATE SET
		cigarette_count = EXCLUDED.cigarette_count,
		location = EXCLUDED.location,
		remarks = EXCLUDED.remarks
	RETURNING ` + smokingColumns

	entry, err := scanSmoking(s.db.QueryRow(ctx, query,
		req.ParsedDate(), *req.CigaretteCount, req.Location, req.Remarks, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert smoking entry: %w", err)
	}

	return entry, nil
}

func (s *SmokingService) Get(ctx context.Context, date time.Time) (*smoking.Entry, error) {
	query := `SELECT ` + smokingColumns + ` FROM smoking_entries WHERE date = $1`

	entry, err := scanSmoking(s.db.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("smoking entry for %s: %w", date.Format("2006-01-02"), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get smoking entry: %w", err)
	}

	return entry, nil
}

func (s *SmokingService) Delete(ctx context.Context, date time.Time) error {
	result, err := s.db.Exec(ctx, `DELETE FROM smoking_entries WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete smoking entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("smoking entry for %s: %w", date.Format("2006-01-02"), ErrNotFound)
	}

	return nil
}

func (s *SmokingService) History(ctx context.Context, start, end *time.Time) ([]*smoking.Entry, error) {
	query := `SELECT ` + smokingColumns + ` FROM smoking_entries`
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
		return nil, fmt.Errorf("failed to list smoking history: %w", err)
	}
	defer rows.Close()

	entries := []*smoking.Entry{}
	for rows.Next() {
		entry, err := scanSmoking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan smoking entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read smoking history: %w", err)
	}

	return entries, nil
}
