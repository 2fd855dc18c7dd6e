package scoring

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/xrash/smetrics"

	"github.com/spigell/jobmatch/internal/semantic"
	"github.com/spigell/jobmatch/internal/textnorm"
	"github.com/spigell/jobmatch/internal/utils"
)

const (
	noRequirementSkillsScore = 80
	skillsFloor              = 30
	matchThreshold           = 0.6
	semanticThreshold        = 0.3
	jaroWinklerThreshold     = 0.8
	minStemLength            = 2
	coverageWeight           = 0.7
	similarityWeight         = 0.3
)

// Skills score sources, reported in ScoreResult.SkillsSource.
const (
	SkillsSourceNoRequirement = "no_requirement"
	SkillsSourceNoSkills      = "no_skills"
	SkillsSourceSemantic      = "semantic"
	SkillsSourceHeuristic     = "heuristic"
)

// SkillSimilarity compares two skill names. Checks run in a fixed priority
// order and the first hit wins, so a containment (0.9) beats a synonym (0.85).
func SkillSimilarity(a, b string) float64 {
	la := skillKey(a)
	lb := skillKey(b)
	if la == "" || lb == "" {
		return 0
	}

	if la == lb {
		return 1.0
	}

	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return 0.9
	}

	// Symbols are stripped before stemming, so "C++" and "C#" both reduce to
	// "c". Single letter stems never count as equal.
	if sa, sb := textnorm.Normalize(a), textnorm.Normalize(b); utf8.RuneCountInString(sa) >= minStemLength && sa == sb {
		return 0.8
	}

	if ca, ok := canonicalSkill(a); ok {
		if cb, ok := canonicalSkill(b); ok && ca == cb {
			return 0.85
		}
	}

	if d := smetrics.JaroWinkler(la, lb, 0.7, 4); d > jaroWinklerThreshold {
		return d
	}

	return 0
}

type skillsOutcome struct {
	score   int
	source  string
	matched []string
}

// skillStrategy yields a skills score or declines with ok=false.
type skillStrategy func(ctx context.Context, applicant, required []string) (skillsOutcome, bool)

// firstSuccess runs strategies in order and returns the first accepted result.
func firstSuccess(ctx context.Context, strategies []skillStrategy, applicant, required []string) (skillsOutcome, bool) {
	for _, strategy := range strategies {
		if out, ok := strategy(ctx, applicant, required); ok {
			return out, true
		}
	}
	return skillsOutcome{}, false
}

// semanticStrategy accepts only answers that came from the provider. The
// adapter's local fallback is treated as inconclusive so that degraded mode
// runs the pairwise heuristics.
func semanticStrategy(adapter *semantic.Adapter) skillStrategy {
	return func(ctx context.Context, applicant, required []string) (skillsOutcome, bool) {
		res := adapter.Similarity(ctx, utils.JoinNonEmpty(applicant, " "), utils.JoinNonEmpty(required, " "))
		if res.Degraded() || res.Score <= semanticThreshold {
			return skillsOutcome{}, false
		}
		return skillsOutcome{
			score:   int(math.Round(res.Score * 100)),
			source:  SkillsSourceSemantic,
			matched: exactMatches(applicant, required),
		}, true
	}
}

func heuristicStrategy(_ context.Context, applicant, required []string) (skillsOutcome, bool) {
	matchedCount := 0
	similaritySum := 0.0
	matched := make([]string, 0, len(required))

	for _, req := range required {
		best := 0.0
		for _, skill := range applicant {
			if s := SkillSimilarity(skill, req); s > best {
				best = s
			}
		}
		if best > matchThreshold {
			matchedCount++
			similaritySum += best
			matched = append(matched, req)
		}
	}

	coverage := float64(matchedCount) / float64(len(required))
	avgSimilarity := 0.0
	if matchedCount > 0 {
		avgSimilarity = similaritySum / float64(matchedCount)
	}

	score := int(math.Round((coverage*coverageWeight + avgSimilarity*similarityWeight) * 100))
	if score < skillsFloor {
		score = skillsFloor
	}

	return skillsOutcome{score: score, source: SkillsSourceHeuristic, matched: matched}, true
}

func (e *Engine) skillsMatch(ctx context.Context, applicant, required []string) skillsOutcome {
	applicant = nonEmpty(applicant)
	required = nonEmpty(required)

	if len(required) == 0 {
		return skillsOutcome{score: noRequirementSkillsScore, source: SkillsSourceNoRequirement}
	}
	if len(applicant) == 0 {
		return skillsOutcome{score: 0, source: SkillsSourceNoSkills}
	}

	out, _ := firstSuccess(ctx, e.strategies, applicant, required)
	return out
}

// SkillsMatchScore returns the 0..100 skills sub-score.
func (e *Engine) SkillsMatchScore(ctx context.Context, applicant, required []string) int {
	return e.skillsMatch(ctx, applicant, required).score
}

func exactMatches(applicant, required []string) []string {
	have := make(map[string]struct{}, len(applicant))
	for _, skill := range applicant {
		if key := skillKey(skill); key != "" {
			have[key] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(required))
	matched := make([]string, 0)
	for _, req := range required {
		key := skillKey(req)
		if _, ok := have[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matched = append(matched, req)
	}
	return matched
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
