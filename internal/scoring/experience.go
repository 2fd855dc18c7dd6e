package scoring

import (
	"math"
	"strings"
	"time"
)

const (
	hoursPerYear      = 24 * 365
	maxEffectiveYears = 10
	noHistoryEntry    = 60
	noHistoryNonEntry = 20
	noMinimumScore    = 100
	levelEntry        = "entry"
	levelIntermediate = "intermediate"
	levelSenior       = "senior"
)

// MinimumYears maps an experience level to its required years. Unknown
// levels carry no minimum.
func MinimumYears(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case levelIntermediate:
		return 2
	case levelSenior:
		return 5
	default:
		return 0
	}
}

// YearsOfExperience sums all intervals in 365-day years. Open intervals run
// until now; intervals without a start or ending before they begin add
// nothing.
func YearsOfExperience(entries []ExperienceEntry, now time.Time) float64 {
	total := 0.0
	for _, entry := range entries {
		if entry.Start.IsZero() {
			continue
		}
		end := entry.End
		if end.IsZero() {
			end = now
		}
		if d := end.Sub(entry.Start); d > 0 {
			total += d.Hours() / hoursPerYear
		}
	}
	return total
}

// ExperienceScore returns the 0..100 experience sub-score.
func ExperienceScore(entries []ExperienceEntry, level string, now time.Time) int {
	if len(entries) == 0 {
		if strings.EqualFold(strings.TrimSpace(level), levelEntry) {
			return noHistoryEntry
		}
		return noHistoryNonEntry
	}

	years := YearsOfExperience(entries, now)
	minimum := MinimumYears(level)

	switch {
	case years >= minimum:
		return int(math.Round(experienceCurve(years)))
	case minimum > 0:
		return partialExperienceCredit(years / minimum)
	default:
		return noMinimumScore
	}
}

// experienceCurve has diminishing returns and is continuous at 2 and 5 years.
func experienceCurve(years float64) float64 {
	y := math.Min(years, maxEffectiveYears)
	switch {
	case y <= 2:
		return 60 + (y/2)*20
	case y <= 5:
		return 80 + ((y-2)/3)*15
	default:
		return 95 + ((y-5)/5)*5
	}
}

func partialExperienceCredit(ratio float64) int {
	switch {
	case ratio >= 0.8:
		return 75
	case ratio >= 0.6:
		return 60
	case ratio >= 0.4:
		return 45
	case ratio >= 0.2:
		return 30
	default:
		return 20
	}
}
