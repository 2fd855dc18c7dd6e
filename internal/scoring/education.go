package scoring

import (
	"strings"
	"time"

	"github.com/spigell/jobmatch/internal/textnorm"
)

const (
	noEducationScore    = 40
	unmatchedLevelScore = 50
	verbatimFieldBonus  = 20
	keywordFieldBonus   = 15
	recentGraduateBonus = 5
	recentGraduateYears = 3
	maxSubScore         = 100
)

// EducationLevelScore ranks a free-text degree on the fixed ladder.
func EducationLevelScore(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return unmatchedLevelScore
	}
	for _, step := range educationLadder {
		for _, marker := range step.markers {
			if strings.Contains(level, marker) {
				return step.score
			}
		}
	}
	return unmatchedLevelScore
}

// EducationScore returns the 0..100 education sub-score from the primary
// (first) education record.
func EducationScore(education []EducationEntry, job *JobPosting, now time.Time) int {
	if len(education) == 0 {
		return noEducationScore
	}

	primary := education[0]
	score := EducationLevelScore(primary.Level) + fieldBonus(primary.FieldOfStudy, job)

	if isRecentGraduate(primary.GraduationDate, now) {
		score += recentGraduateBonus
	}

	if score > maxSubScore {
		score = maxSubScore
	}
	return score
}

// fieldBonus prefers a whole-word mention of the field in the job
// description over a shared domain keyword.
func fieldBonus(field string, job *JobPosting) int {
	field = textnorm.Clean(field)
	description := " " + textnorm.Clean(job.Description) + " "

	if field != "" && strings.Contains(description, " "+field+" ") {
		return verbatimFieldBonus
	}

	if hasRelevanceKeyword(field) || hasRelevanceKeyword(job.Title+" "+job.Description) {
		return keywordFieldBonus
	}

	return 0
}

// hasRelevanceKeyword matches whole stemmed words, so "it" does not fire on
// "with" and "technologies" still matches "technology".
func hasRelevanceKeyword(text string) bool {
	tokens := textnorm.StemmedTokens(text)
	if len(tokens) == 0 {
		return false
	}

	words := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		words[token] = struct{}{}
	}

	for _, keyword := range relevanceKeywords {
		if _, ok := words[textnorm.Stem(keyword)]; ok {
			return true
		}
	}
	return false
}

func isRecentGraduate(graduated, now time.Time) bool {
	if graduated.IsZero() {
		return false
	}
	return graduated.After(now.AddDate(-recentGraduateYears, 0, 0))
}
