// Package jobboard loads applicant profiles and job postings from local
// YAML/JSON documents and manages ranked job lists for the CLI.
package jobboard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/jobmatch/internal/scoring"
)

const (
	profilesKey = "profiles"
	jobsKey     = "jobs"
)

var ErrNoDocuments = errors.New("no documents found")

// dateLayouts are tried in order. Anything else decodes to the zero time,
// which the scoring engine treats as unknown.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"01/2006",
	"2006",
}

// openEnded are spellings of an experience entry that has not ended.
var openEnded = map[string]struct{}{
	"":        {},
	"present": {},
	"current": {},
	"now":     {},
}

// ParseDate is lenient: unknown formats and open-ended markers give the zero
// time rather than an error.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if _, ok := openEnded[strings.ToLower(s)]; ok {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func dateHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ParseDate(v), nil
	case int:
		return ParseDate(fmt.Sprint(v)), nil
	case time.Time:
		return v, nil
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, nil
	}
}

func decode(input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       dateHook,
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	return decoder.Decode(input)
}

func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return v, nil
}

// LoadProfile reads a single applicant profile document.
func LoadProfile(path string) (*scoring.ApplicantProfile, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	var profile scoring.ApplicantProfile
	if err := decode(v.AllSettings(), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return &profile, nil
}

// LoadJob reads a single job posting document.
func LoadJob(path string) (*scoring.JobPosting, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	var job scoring.JobPosting
	if err := decode(v.AllSettings(), &job); err != nil {
		return nil, fmt.Errorf("decoding job %s: %w", path, err)
	}
	return &job, nil
}

// LoadProfiles reads the "profiles" list of a document.
func LoadProfiles(path string) ([]*scoring.ApplicantProfile, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	raw := v.Get(profilesKey)
	if raw == nil {
		return nil, fmt.Errorf("%w: key %q in %s", ErrNoDocuments, profilesKey, path)
	}

	var profiles []*scoring.ApplicantProfile
	if err := decode(raw, &profiles); err != nil {
		return nil, fmt.Errorf("decoding profiles %s: %w", path, err)
	}
	return profiles, nil
}

// LoadJobs reads the "jobs" list of a document.
func LoadJobs(path string) (*Jobs, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	raw := v.Get(jobsKey)
	if raw == nil {
		return nil, fmt.Errorf("%w: key %q in %s", ErrNoDocuments, jobsKey, path)
	}

	jobs := &Jobs{}
	if err := decode(raw, &jobs.Items); err != nil {
		return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
	}
	return jobs, nil
}

// Jobs is a list of postings loaded from one document.
type Jobs struct {
	Items []*scoring.JobPosting
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *scoring.JobPosting {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}
