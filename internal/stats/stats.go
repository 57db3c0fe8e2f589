// Package stats holds the streak and KPI calculations behind the dashboard.
// Everything here is a pure function over a slice of distinct entry dates
// (midnight UTC); callers are responsible for fetching only dates inside the
// tracking window and not after today.
package stats

import (
	"math"
	"sort"
	"time"

	"growthTrackerAPI/internal/period"
)

// WorkoutStats is the workout half of the dashboard payload.
type WorkoutStats struct {
	CurrentStreak     int      `json:"current_streak"`
	LongestStreak     int      `json:"longest_streak"`
	TotalWorkoutDays  int      `json:"total_workout_days"`
	TotalDays         int      `json:"total_days"`
	WorkoutPercentage float64  `json:"workout_percentage"`
	AverageDuration   *float64 `json:"average_duration"`
	MostCommonType    *string  `json:"most_common_type"`
}

// SmokingStats is the smoking half of the dashboard payload. Clean streaks
// count days without an entry; an entry's existence makes the day a relapse
// regardless of its cigarette count.
type SmokingStats struct {
	CurrentCleanStreak int     `json:"current_clean_streak"`
	LongestCleanStreak int     `json:"longest_clean_streak"`
	TotalRelapses      int     `json:"total_relapses"`
	TotalCigarettes    int     `json:"total_cigarettes"`
	MostCommonLocation *string `json:"most_common_location"`
}

func dateSet(dates []time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		set[period.Day(d)] = struct{}{}
	}
	return set
}

// CurrentStreak counts consecutive days with an entry, walking backwards
// from today and stopping at the first missing day or the day before the
// period start. If today itself has no entry the streak is 0.
func CurrentStreak(dates []time.Time, start, today time.Time) int {
	set := dateSet(dates)
	start, today = period.Day(start), period.Day(today)

	streak := 0
	for d := today; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if _, ok := set[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

// CurrentCleanStreak is the dual of CurrentStreak: consecutive days WITHOUT
// an entry, ending at today. An entry today means the streak is 0.
func CurrentCleanStreak(dates []time.Time, start, today time.Time) int {
	set := dateSet(dates)
	start, today = period.Day(start), period.Day(today)

	streak := 0
	for d := today; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if _, ok := set[d]; ok {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the length of the longest run of consecutive
// calendar days present in dates. A gap resets the run to 1: the date that
// broke the old run starts the next one.
func LongestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		sorted = append(sorted, period.Day(d))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch {
		case sorted[i].Equal(sorted[i-1]):
			// duplicate date, ignore
		case sorted[i].Equal(sorted[i-1].AddDate(0, 0, 1)):
			run++
			if run > longest {
				longest = run
			}
		default:
			run = 1
		}
	}
	return longest
}

// LongestCleanStreak returns the longest run of days without an entry inside
// [start, today]. It is computed from the gaps between consecutive entries
// plus the boundary gaps before the first entry and after the last one. With
// no entries at all the whole elapsed period is clean.
func LongestCleanStreak(dates []time.Time, start, today time.Time) int {
	start, today = period.Day(start), period.Day(today)
	if len(dates) == 0 {
		return ElapsedDays(start, today)
	}

	sorted := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		sorted = append(sorted, period.Day(d))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	// Clean days before the first entry.
	longest := daysBetween(start, sorted[0])

	for i := 0; i+1 < len(sorted); i++ {
		gap := daysBetween(sorted[i], sorted[i+1]) - 1
		if gap > longest {
			longest = gap
		}
	}

	// Clean days after the last entry, up to today.
	if tail := daysBetween(sorted[len(sorted)-1], today); tail > longest {
		longest = tail
	}
	if longest < 0 {
		return 0
	}
	return longest
}

// ElapsedDays is the inclusive day count from start to today, or 0 when
// today precedes start.
func ElapsedDays(start, today time.Time) int {
	start, today = period.Day(start), period.Day(today)
	if today.Before(start) {
		return 0
	}
	return daysBetween(start, today) + 1
}

// Percentage returns part/whole as a percentage rounded to one decimal
// place, and 0 on a zero denominator.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return Round1(float64(part) / float64(whole) * 100)
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// daysBetween assumes both arguments are midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
