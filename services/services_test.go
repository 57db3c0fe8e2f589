package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthTrackerAPI/internal/period"
	"growthTrackerAPI/internal/types/smoking"
	"growthTrackerAPI/internal/types/workout"
)

// These tests run against a real database, like the rest of the service
// layer. They skip when DATABASE_URL is not set. All rows are written into
// January 1997 so they cannot collide with live tracking data, and each test
// cleans up what it created.

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping database tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	require.NoError(t, NewAdminService(pool, "").CreateTables(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func testDate(day int) time.Time {
	return time.Date(1997, time.January, day, 0, 0, 0, 0, time.UTC)
}

func testDateStr(day int) string {
	return testDate(day).Format("2006-01-02")
}

func cleanupRange(t *testing.T, pool *pgxpool.Pool) {
	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = pool.Exec(ctx, `DELETE FROM workout_entries WHERE date >= '1997-01-01' AND date <= '1997-12-31'`)
		_, _ = pool.Exec(ctx, `DELETE FROM smoking_entries WHERE date >= '1997-01-01' AND date <= '1997-12-31'`)
	})
}

func workoutReq(t *testing.T, day int, workoutType string, duration *int) *workout.CreateRequest {
	req := &workout.CreateRequest{
		Date:            testDateStr(day),
		WorkoutType:     workoutType,
		DurationMinutes: duration,
	}
	require.NoError(t, req.Validate())
	return req
}

func smokingReq(t *testing.T, day int, count int, location *string) *smoking.CreateRequest {
	req := &smoking.CreateRequest{
		Date:           testDateStr(day),
		CigaretteCount: &count,
		Location:       location,
	}
	require.NoError(t, req.Validate())
	return req
}

func TestWorkoutCreateGetRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	duration := 45
	created, err := svc.Create(ctx, workoutReq(t, 17, workout.TypePush, &duration))
	require.NoError(t, err)
	assert.Equal(t, workout.TypePush, created.WorkoutType)
	assert.True(t, created.WorkoutDone)

	got, err := svc.Get(ctx, testDate(17))
	require.NoError(t, err)
	assert.Equal(t, created.Date, got.Date)
	assert.Equal(t, created.WorkoutType, got.WorkoutType)
	require.NotNil(t, got.DurationMinutes)
	assert.Equal(t, 45, *got.DurationMinutes)
}

func TestWorkoutCreateConflict(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	_, err := svc.Create(ctx, workoutReq(t, 17, workout.TypePush, nil))
	require.NoError(t, err)

	_, err = svc.Create(ctx, workoutReq(t, 17, workout.TypePull, nil))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWorkoutUpsertIdempotent(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	duration := 30
	first, err := svc.Upsert(ctx, workoutReq(t, 5, workout.TypeLegs, &duration))
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, workoutReq(t, 5, workout.TypeLegs, &duration))
	require.NoError(t, err)
	third, err := svc.Upsert(ctx, workoutReq(t, 5, workout.TypeLegs, &duration))
	require.NoError(t, err)

	// created_at survives repeated upserts, and there is still one row
	assert.True(t, first.CreatedAt.Equal(third.CreatedAt))
	assert.Equal(t, second.WorkoutType, third.WorkoutType)

	entries, err := svc.History(ctx, ptrDate(1), ptrDate(31))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWorkoutUpdatePartialMerge(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	duration := 60
	_, err := svc.Create(ctx, workoutReq(t, 8, workout.TypeUpper, &duration))
	require.NoError(t, err)

	newType := workout.TypeCardio
	updated, err := svc.Update(ctx, testDate(8), &workout.UpdateRequest{WorkoutType: &newType})
	require.NoError(t, err)

	assert.Equal(t, workout.TypeCardio, updated.WorkoutType)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 60, *updated.DurationMinutes)
}

func TestWorkoutUpdateNotFound(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)

	newType := workout.TypePush
	_, err := svc.Update(context.Background(), testDate(25), &workout.UpdateRequest{WorkoutType: &newType})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutDelete(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	_, err := svc.Create(ctx, workoutReq(t, 12, workout.TypeLower, nil))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testDate(12)))

	_, err = svc.Get(ctx, testDate(12))
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again reports not found, not success
	assert.ErrorIs(t, svc.Delete(ctx, testDate(12)), ErrNotFound)
}

func TestWorkoutHistoryOrderingAndBounds(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewWorkoutService(pool)
	ctx := context.Background()

	for _, day := range []int{3, 1, 2} {
		_, err := svc.Upsert(ctx, workoutReq(t, day, workout.TypeOthers, nil))
		require.NoError(t, err)
	}

	entries, err := svc.History(ctx, ptrDate(1), ptrDate(31))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// newest first
	assert.Equal(t, testDate(3), period.Day(entries[0].Date))
	assert.Equal(t, testDate(1), period.Day(entries[2].Date))

	bounded, err := svc.History(ctx, ptrDate(2), ptrDate(2))
	require.NoError(t, err)
	assert.Len(t, bounded, 1)

	empty, err := svc.History(ctx, ptrDate(20), ptrDate(25))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSmokingCreateAndConflict(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewSmokingService(pool)
	ctx := context.Background()

	loc := smoking.LocationSocial
	created, err := svc.Create(ctx, smokingReq(t, 10, 5, &loc))
	require.NoError(t, err)
	assert.Equal(t, 5, created.CigaretteCount)

	_, err = svc.Create(ctx, smokingReq(t, 10, 2, nil))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSmokingUpsertKeepsCreatedAt(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	svc := NewSmokingService(pool)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, smokingReq(t, 11, 3, nil))
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, smokingReq(t, 11, 7, nil))
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, 7, second.CigaretteCount)
}

func TestDashboardAggregation(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	ctx := context.Background()

	window := period.Window{
		Start: time.Date(1997, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1997, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	today := testDate(17)
	svc := NewDashboardService(pool, window, func() time.Time { return today })

	workouts := NewWorkoutService(pool)
	smokings := NewSmokingService(pool)

	// workouts on the 10th, 11th and 13th: longest streak is 2
	d45, d35 := 45, 35
	for day, dur := range map[int]*int{10: &d45, 11: &d35, 13: nil} {
		_, err := workouts.Upsert(ctx, workoutReq(t, day, workout.TypePush, dur))
		require.NoError(t, err)
	}

	// relapses on the 10th..13th with counts 5,0,0,3
	for day, count := range map[int]int{10: 5, 11: 0, 12: 0, 13: 3} {
		_, err := smokings.Upsert(ctx, smokingReq(t, day, count, nil))
		require.NoError(t, err)
	}

	resp, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1997-01-17", resp.LastUpdated)

	assert.Equal(t, 0, resp.Workout.CurrentStreak)
	assert.Equal(t, 2, resp.Workout.LongestStreak)
	assert.Equal(t, 3, resp.Workout.TotalWorkoutDays)
	assert.Equal(t, 17, resp.Workout.TotalDays)
	assert.Equal(t, 17.6, resp.Workout.WorkoutPercentage)
	require.NotNil(t, resp.Workout.AverageDuration)
	assert.Equal(t, 40.0, *resp.Workout.AverageDuration)
	require.NotNil(t, resp.Workout.MostCommonType)
	assert.Equal(t, workout.TypePush, *resp.Workout.MostCommonType)

	// a zero-count entry is still a relapse day
	assert.Equal(t, 4, resp.Smoking.TotalRelapses)
	assert.Equal(t, 8, resp.Smoking.TotalCigarettes)
	assert.Equal(t, 4, resp.Smoking.CurrentCleanStreak)
	assert.Equal(t, 9, resp.Smoking.LongestCleanStreak)
	assert.Nil(t, resp.Smoking.MostCommonLocation)

	// invariants hold regardless of data
	assert.LessOrEqual(t, resp.Workout.CurrentStreak, resp.Workout.LongestStreak)
	assert.GreaterOrEqual(t, resp.Workout.WorkoutPercentage, 0.0)
	assert.LessOrEqual(t, resp.Workout.WorkoutPercentage, 100.0)
}

func TestDashboardEmptyStore(t *testing.T) {
	pool := setupTestDB(t)
	cleanupRange(t, pool)
	ctx := context.Background()

	window := period.Window{
		Start: time.Date(1997, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1997, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	today := testDate(17)
	svc := NewDashboardService(pool, window, func() time.Time { return today })

	resp, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Workout.TotalWorkoutDays)
	assert.Equal(t, 0.0, resp.Workout.WorkoutPercentage)
	assert.Nil(t, resp.Workout.AverageDuration)
	assert.Nil(t, resp.Workout.MostCommonType)

	// the whole elapsed period is clean when the smoking log is empty
	assert.Equal(t, 17, resp.Smoking.CurrentCleanStreak)
	assert.Equal(t, 17, resp.Smoking.LongestCleanStreak)
	assert.Equal(t, 0, resp.Smoking.TotalCigarettes)
}

func ptrDate(day int) *time.Time {
	d := testDate(day)
	return &d
}
