package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"growthTrackerAPI/internal/period"
	"growthTrackerAPI/internal/stats"
	"growthTrackerAPI/internal/types/dashboard"
)

// DashboardService composes the streak calculators over both logs. It fetches
// the entry dates inside the tracking window (never past today) and leaves
// the averages, sums and mode lookups to SQL.
type DashboardService struct {
	db     *pgxpool.Pool
	window period.Window
	now    period.Clock
}

func NewDashboardService(db *pgxpool.Pool, window period.Window, now period.Clock) *DashboardService {
	return &DashboardService{db: db, window: window, now: now}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dashboard.Response, error) {
	today := s.window.Clamp(s.now())

	workoutStats, err := s.workoutStats(ctx, today)
	if err != nil {
		return nil, err
	}

	smokingStats, err := s.smokingStats(ctx, today)
	if err != nil {
		return nil, err
	}

	return &dashboard.Response{
		Workout:     *workoutStats,
		Smoking:     *smokingStats,
		LastUpdated: today.Format("2006-01-02"),
	}, nil
}

func (s *DashboardService) workoutStats(ctx context.Context, today time.Time) (*stats.WorkoutStats, error) {
	dates, err := s.entryDates(ctx, "workout_entries", today)
	if err != nil {
		return nil, fmt.Errorf("failed to load workout dates: %w", err)
	}

	totalDays := stats.ElapsedDays(s.window.Start, today)

	// Zero-minute rows are treated like missing data, not instant workouts.
	var avgDuration *float64
	err = s.db.QueryRow(ctx, `
	SELECT AVG(duration_minutes)
	FROM workout_entries
	WHERE date >= $1 AND date <= $2 AND duration_minutes > 0`,
		s.window.Start, today).Scan(&avgDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average duration: %w", err)
	}
	if avgDuration != nil {
		rounded := stats.Round1(*avgDuration)
		avgDuration = &rounded
	}

	mostCommonType, err := s.mostCommon(ctx, "workout_entries", "workout_type", today)
	if err != nil {
		return nil, fmt.Errorf("failed to compute most common workout type: %w", err)
	}

	return &stats.WorkoutStats{
		CurrentStreak:     stats.CurrentStreak(dates, s.window.Start, today),
		LongestStreak:     stats.LongestStreak(dates),
		TotalWorkoutDays:  len(dates),
		TotalDays:         totalDays,
		WorkoutPercentage: stats.Percentage(len(dates), totalDays),
		AverageDuration:   avgDuration,
		MostCommonType:    mostCommonType,
	}, nil
}

func (s *DashboardService) smokingStats(ctx context.Context, today time.Time) (*stats.SmokingStats, error) {
	dates, err := s.entryDates(ctx, "smoking_entries", today)
	if err != nil {
		return nil, fmt.Errorf("failed to load smoking dates: %w", err)
	}

	var totalCigarettes *int
	err = s.db.QueryRow(ctx, `
	SELECT SUM(cigarette_count)
	FROM smoking_entries
	WHERE date >= $1 AND date <= $2`,
		s.window.Start, today).Scan(&totalCigarettes)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cigarettes: %w", err)
	}
	total := 0
	if totalCigarettes != nil {
		total = *totalCigarettes
	}

	mostCommonLocation, err := s.mostCommon(ctx, "smoking_entries", "location", today)
	if err != nil {
		return nil, fmt.Errorf("failed to compute most common location: %w", err)
	}

	return &stats.SmokingStats{
		CurrentCleanStreak: stats.CurrentCleanStreak(dates, s.window.Start, today),
		LongestCleanStreak: stats.LongestCleanStreak(dates, s.window.Start, today),
		TotalRelapses:      len(dates),
		TotalCigarettes:    total,
		MostCommonLocation: mostCommonLocation,
	}, nil
}

func (s *DashboardService) entryDates(ctx context.Context, table string, today time.Time) ([]time.Time, error) {
	query := fmt.Sprintf(`SELECT date FROM %s WHERE date >= $1 AND date <= $2 ORDER BY date`, table)

	rows, err := s.db.Query(ctx, query, s.window.Start, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// mostCommon returns the modal value of a categorical column, ignoring NULL
// rows. Ties break arbitrarily; there is no secondary ordering on purpose.
func (s *DashboardService) mostCommon(ctx context.Context, table, column string, today time.Time) (*string, error) {
	query := fmt.Sprintf(`
	SELECT %[2]s
	FROM %[1]s
	WHERE date >= $1 AND date <= $2 AND %[2]s IS NOT NULL
	GROUP BY %[2]s
	ORDER BY COUNT(*) DESC
	LIMIT 1`, table, column)

	var value string
	err := s.db.QueryRow(ctx, query, s.window.Start, today).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}
