// Package scoring computes the 0..100 qualification score between an
// applicant profile and a job posting.
package scoring

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/logger"
	"github.com/spigell/jobmatch/internal/semantic"
)

// Category weights out of 100. Documents are pass/fail.
const (
	WeightSkills     = 40
	WeightExperience = 30
	WeightEducation  = 20
	WeightLocation   = 5
	WeightSalary     = 5
	DocumentsFlat    = 10
	MaxTotal         = 100
)

// Engine has no mutable fields after construction; one Engine may score
// any number of pairs concurrently.
type Engine struct {
	adapter    *semantic.Adapter
	strategies []skillStrategy
	logger     *zap.Logger
	now        func() time.Time
}

type Option func(*Engine)

// WithClock fixes the reference time used for open experience intervals and
// graduation recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an Engine around the semantic adapter. A nil adapter
// keeps the engine permanently in degraded mode.
func NewEngine(adapter *semantic.Adapter, opts ...Option) *Engine {
	e := &Engine{
		adapter: adapter,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.strategies = []skillStrategy{
		semanticStrategy(adapter),
		heuristicStrategy,
	}

	return e
}

// Score never fails: missing data maps to each matcher's neutral value.
func (e *Engine) Score(ctx context.Context, profile *ApplicantProfile, job *JobPosting) ScoreResult {
	if profile == nil {
		profile = &ApplicantProfile{}
	}
	if job == nil {
		job = &JobPosting{}
	}

	now := e.now()
	skills := e.skillsMatch(ctx, profile.Skills, job.SkillsRequired)

	breakdown := Breakdown{
		Skills:     skills.score,
		Experience: ExperienceScore(profile.Experience, job.ExperienceLevel, now),
		Education:  EducationScore(profile.Education, job, now),
		Location:   LocationScore(profile.Location, job),
		Salary:     SalaryScore(profile.ExpectedSalary, job),
		Bonus:      Bonus(profile, job),
	}
	if profile.HasResume {
		breakdown.Documents = DocumentsFlat
	}

	result := ScoreResult{
		Total:         breakdown.Total(),
		Breakdown:     breakdown,
		SkillsSource:  skills.source,
		MatchedSkills: skills.matched,
	}

	e.logger.Debug("scored applicant against job", append(logger.PairFields(profile.ID, job.ID),
		zap.Int("total", result.Total),
		zap.String("skills_source", result.SkillsSource),
		zap.Any("breakdown", breakdown),
	)...)

	return result
}

// Composite is the weighted sum before rounding and clamping.
func (b Breakdown) Composite() float64 {
	return float64(b.Skills)/100*WeightSkills +
		float64(b.Experience)/100*WeightExperience +
		float64(b.Education)/100*WeightEducation +
		b.Location*WeightLocation +
		b.Salary*WeightSalary +
		float64(b.Documents) +
		float64(b.Bonus)
}

// Total is the composite rounded and clamped to [0,100].
func (b Breakdown) Total() int {
	total := int(math.Round(b.Composite()))
	switch {
	case total > MaxTotal:
		return MaxTotal
	case total < 0:
		return 0
	default:
		return total
	}
}
