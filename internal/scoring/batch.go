package scoring

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// JobMatch is one ranked job for a fixed applicant.
type JobMatch struct {
	Job    *JobPosting `json:"job"`
	Result ScoreResult `json:"result"`
}

// ApplicantMatch is one ranked applicant for a fixed job.
type ApplicantMatch struct {
	Applicant *ApplicantProfile `json:"applicant"`
	Result    ScoreResult       `json:"result"`
}

// BatchScorer fans independent pair computations out over a bounded pool so
// that a batch never opens more than Concurrency semantic calls at once.
type BatchScorer struct {
	engine      *Engine
	concurrency int
	logger      *zap.Logger
}

func NewBatchScorer(engine *Engine, concurrency int, logger *zap.Logger) *BatchScorer {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchScorer{engine: engine, concurrency: concurrency, logger: logger}
}

// RankJobs scores every job for profile and orders them by total, highest
// first. Ties keep input order.
func (b *BatchScorer) RankJobs(ctx context.Context, profile *ApplicantProfile, jobs []*JobPosting) []JobMatch {
	matches := make([]JobMatch, len(jobs))

	b.run(ctx, "jobs", len(jobs), func(ctx context.Context, i int) ScoreResult {
		matches[i] = JobMatch{Job: jobs[i], Result: b.engine.Score(ctx, profile, jobs[i])}
		return matches[i].Result
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Total > matches[j].Result.Total
	})

	return matches
}

// RankApplicants scores every profile against job, highest first.
func (b *BatchScorer) RankApplicants(ctx context.Context, job *JobPosting, profiles []*ApplicantProfile) []ApplicantMatch {
	matches := make([]ApplicantMatch, len(profiles))

	b.run(ctx, "applicants", len(profiles), func(ctx context.Context, i int) ScoreResult {
		matches[i] = ApplicantMatch{Applicant: profiles[i], Result: b.engine.Score(ctx, profiles[i], job)}
		return matches[i].Result
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Result.Total > matches[j].Result.Total
	})

	return matches
}

func (b *BatchScorer) run(ctx context.Context, kind string, n int, score func(context.Context, int) ScoreResult) {
	logger := b.logger.With(
		zap.String("batch_id", uuid.NewString()),
		zap.String("kind", kind),
	)
	logger.Info("batch scoring started",
		zap.Int("pairs", n),
		zap.Int("concurrency", b.concurrency),
	)

	start := time.Now()

	results := make([]ScoreResult, n)

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i := range n {
		g.Go(func() error {
			results[i] = score(ctx, i)
			return nil
		})
	}
	// Scoring never fails; Wait only joins the pool.
	_ = g.Wait()

	sources := make(map[string]int)
	for _, res := range results {
		sources[res.SkillsSource]++
	}

	logger.Info("batch scoring completed",
		zap.Int("pairs", n),
		zap.Duration("elapsed", time.Since(start)),
		zap.Any("skills_sources", sources),
	)
}
