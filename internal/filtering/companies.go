package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobboard"
)

type companiesFilter struct {
	toggle
	companies []string
}

// NewExcludedCompanies creates a filter that removes jobs by companies
// configured in the config.
func NewExcludedCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return ExcludedCompaniesName }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg != nil {
		f.companies = append(f.companies, cfg.ExcludedCompanies...)
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, m *jobboard.Matches) (*jobboard.Matches, Step, error) {
	initial := m.Len()
	if len(f.companies) == 0 {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	excluded := m.Exclude(jobboard.MatchCompanyField, f.companies)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(excluded), Left: m.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
