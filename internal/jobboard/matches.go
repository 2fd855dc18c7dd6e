package jobboard

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/jobmatch/internal/scoring"
)

const (
	MatchIDField      = "ID"
	MatchCompanyField = "Company"

	unknownCompany = "unknown company"
)

// Matches is a ranked list of jobs for one applicant, highest total first.
type Matches struct {
	Items []scoring.JobMatch `json:"items"`
}

func NewMatches(items []scoring.JobMatch) *Matches {
	return &Matches{Items: items}
}

func (m *Matches) Len() int {
	return len(m.Items)
}

func (m *Matches) FindByID(id string) *scoring.JobMatch {
	for i := range m.Items {
		if m.Items[i].Job != nil && m.Items[i].Job.ID == id {
			return &m.Items[i]
		}
	}
	return nil
}

func (m *Matches) IDs() []string {
	ids := make([]string, 0, len(m.Items))
	for _, match := range m.Items {
		ids = append(ids, jobID(match))
	}
	return ids
}

// Exclude drops every match whose field equals one of targets, case
// insensitively, and returns the dropped job ids. Ranking order is kept.
func (m *Matches) Exclude(field string, targets []string) []string {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		if target = strings.ToLower(strings.TrimSpace(target)); target != "" {
			set[target] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	return m.Drop(func(match scoring.JobMatch) bool {
		_, ok := set[strings.ToLower(strings.TrimSpace(stringField(match, field)))]
		return ok
	})
}

// Drop removes every match for which reject returns true and returns the
// dropped job ids. Ranking order is kept.
func (m *Matches) Drop(reject func(scoring.JobMatch) bool) []string {
	var dropped []string
	kept := m.Items[:0]
	for _, match := range m.Items {
		if reject(match) {
			dropped = append(dropped, jobID(match))
			continue
		}
		kept = append(kept, match)
	}
	m.Items = kept
	return dropped
}

func (m *Matches) ToExcluded() *ExcludedJobs {
	excluded := &ExcludedJobs{}
	now := time.Now().UTC()
	for _, match := range m.Items {
		if match.Job == nil {
			continue
		}
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         match.Job.ID,
			URL:        match.Job.URL,
			Company:    match.Job.Company,
			Total:      match.Result.Total,
			ExcludedAt: now,
		})
	}
	return excluded
}

func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobmatch_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups the ranked jobs by company, keeping rank order
// inside every group.
func (m *Matches) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, match := range m.Items {
		job := match.Job
		if job == nil {
			continue
		}

		key := strings.TrimSpace(job.Company)
		if key == "" {
			key = unknownCompany
		}

		b := match.Result.Breakdown
		breakdown := fmt.Sprintf("skills=%d experience=%d education=%d location=%.2f salary=%.2f documents=%d bonus=%d",
			b.Skills, b.Experience, b.Education, b.Location, b.Salary, b.Documents, b.Bonus)

		report[key] = append(report[key], map[string]string{
			"id":            job.ID,
			"title":         job.Title,
			"url":           job.URL,
			"location":      job.Location,
			"salary":        formatSalary(job.SalaryRange),
			"total":         strconv.Itoa(match.Result.Total),
			"skills_source": match.Result.SkillsSource,
			"breakdown":     breakdown,
		})
	}
	return report
}

func formatSalary(s scoring.SalaryRange) string {
	if s.Min <= 0 && s.Max <= 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%.0f-%.0f %s", s.Min, s.Max, s.Currency))
}

func stringField(match scoring.JobMatch, name string) string {
	if match.Job == nil {
		return ""
	}
	switch name {
	case MatchIDField:
		return match.Job.ID
	case MatchCompanyField:
		return match.Job.Company
	default:
		return ""
	}
}

func jobID(match scoring.JobMatch) string {
	if match.Job == nil {
		return ""
	}
	return match.Job.ID
}
