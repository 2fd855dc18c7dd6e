package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobboard"
	"github.com/spigell/jobmatch/internal/scoring"
)

type minimumTotalFilter struct {
	toggle
	minimum int
}

// NewMinimumTotal creates a filter that drops jobs scoring below the
// configured total.
func NewMinimumTotal() Filter {
	return &minimumTotalFilter{}
}

func (f *minimumTotalFilter) Name() string { return MinimumTotalName }

func (f *minimumTotalFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumTotal
	}
	if f.minimum < 0 || f.minimum > scoring.MaxTotal {
		return fmt.Errorf("minimum total must be within 0..%d, got %d", scoring.MaxTotal, f.minimum)
	}
	return nil
}

func (f *minimumTotalFilter) Apply(_ context.Context, deps Deps, m *jobboard.Matches) (*jobboard.Matches, Step, error) {
	initial := m.Len()
	if f.minimum == 0 {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	dropped := m.Drop(func(match scoring.JobMatch) bool {
		return match.Result.Total < f.minimum
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding jobs below the minimum total",
			zap.Int("minimum_total", f.minimum),
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(dropped), Left: m.Len()}, nil
}

func (f *minimumTotalFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_total": strconv.Itoa(f.minimum)},
	}
}
