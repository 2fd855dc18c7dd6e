package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobboard"
	"github.com/spigell/jobmatch/internal/scoring"
)

const remoteMarker = "remote"

type remoteOnlyFilter struct {
	toggle
	enabled bool
}

// NewRemoteOnly creates a filter that keeps only remote jobs when requested.
func NewRemoteOnly() Filter {
	return &remoteOnlyFilter{}
}

func (f *remoteOnlyFilter) Name() string { return RemoteOnlyName }

func (f *remoteOnlyFilter) Validate(cfg *Config) error {
	f.enabled = cfg != nil && cfg.RemoteOnly
	return nil
}

func (f *remoteOnlyFilter) Apply(_ context.Context, deps Deps, m *jobboard.Matches) (*jobboard.Matches, Step, error) {
	initial := m.Len()
	if !f.enabled {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	dropped := m.Drop(func(match scoring.JobMatch) bool {
		return !isRemote(match.Job)
	})
	if len(dropped) > 0 {
		deps.Logger.Info("excluding on-site jobs",
			zap.Strings("excluded_jobs", dropped),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(dropped), Left: m.Len()}, nil
}

func (f *remoteOnlyFilter) Status() Status {
	reason := f.reason
	if reason == "" && !f.enabled {
		reason = "remote-only not requested"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: reason}
}

func isRemote(job *scoring.JobPosting) bool {
	if job == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(job.LocationType), remoteMarker) ||
		strings.Contains(strings.ToLower(job.Location), remoteMarker)
}
