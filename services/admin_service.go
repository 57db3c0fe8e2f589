package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const duplicateDatabase = "42P04"

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// AdminService covers deployment-time bootstrap: creating the database and
// the tables. Both operations are idempotent and are not part of normal
// request handling. adminURL points at the maintenance database (usually
// "postgres") since CREATE DATABASE cannot run inside the target database.
type AdminService struct {
	db       *pgxpool.Pool
	adminURL string
}

func NewAdminService(db *pgxpool.Pool, adminURL string) *AdminService {
	return &AdminService{db: db, adminURL: adminURL}
}

// CreateDatabase creates the named database, succeeding silently when it
// already exists. Returns (created, err) so callers can report which case
// happened. The name is restricted to a plain identifier because CREATE
// DATABASE does not take bind parameters.
func (s *AdminService) CreateDatabase(ctx context.Context, name string) (bool, error) {
	if !identifierPattern.MatchString(name) {
		return false, fmt.Errorf("invalid database name %q", name)
	}
	if s.adminURL == "" {
		return false, fmt.Errorf("DATABASE_ADMIN_URL is not configured")
	}

	conn, err := pgx.Connect(ctx, s.adminURL)
	if err != nil {
		return false, fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %s`, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabase {
			return false, nil
		}
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}

	return true, nil
}

// CreateTables creates the two entry tables and the health_check table.
// IF NOT EXISTS makes repeated calls harmless.
func (s *AdminService) CreateTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS workout_entries (
			date DATE PRIMARY KEY,
			workout_type TEXT NOT NULL,
			workout_done BOOLEAN NOT NULL DEFAULT TRUE,
			duration_minutes INTEGER,
			intensity TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS smoking_entries (
			date DATE PRIMARY KEY,
			cigarette_count INTEGER NOT NULL,
			location TEXT,
			remarks TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS health_check (
			id SERIAL PRIMARY KEY,
			status TEXT NOT NULL,
			checked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return nil
}
