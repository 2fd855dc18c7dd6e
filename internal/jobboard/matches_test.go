package jobboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spigell/jobmatch/internal/scoring"
)

func testMatches() *Matches {
	return NewMatches([]scoring.JobMatch{
		{Job: &scoring.JobPosting{ID: "1", Title: "Go Developer", Company: "Acme", URL: "https://example.com/1"}, Result: scoring.ScoreResult{Total: 90, SkillsSource: scoring.SkillsSourceHeuristic}},
		{Job: &scoring.JobPosting{ID: "2", Title: "SRE", Company: "Globex"}, Result: scoring.ScoreResult{Total: 70}},
		{Job: &scoring.JobPosting{ID: "3", Title: "Platform Engineer", Company: "acme"}, Result: scoring.ScoreResult{Total: 60}},
		{Job: &scoring.JobPosting{ID: "4", Title: "Data Engineer"}, Result: scoring.ScoreResult{Total: 40}},
	})
}

func TestMatchesExcludeKeepsOrder(t *testing.T) {
	m := testMatches()

	dropped := m.Exclude(MatchCompanyField, []string{" ACME "})

	if !reflect.DeepEqual(dropped, []string{"1", "3"}) {
		t.Fatalf("unexpected dropped ids: %v", dropped)
	}
	if !reflect.DeepEqual(m.IDs(), []string{"2", "4"}) {
		t.Fatalf("unexpected remaining ids: %v", m.IDs())
	}
}

func TestMatchesExcludeByID(t *testing.T) {
	m := testMatches()

	dropped := m.Exclude(MatchIDField, []string{"4", "2", "missing"})

	if !reflect.DeepEqual(dropped, []string{"2", "4"}) {
		t.Fatalf("unexpected dropped ids: %v", dropped)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 matches left, got %d", m.Len())
	}
	if got := m.Exclude(MatchIDField, nil); got != nil {
		t.Fatalf("expected nothing dropped, got %v", got)
	}
}

func TestMatchesFindByID(t *testing.T) {
	m := testMatches()

	match := m.FindByID("2")
	if match == nil || match.Result.Total != 70 {
		t.Fatalf("unexpected match: %+v", match)
	}
	if m.FindByID("nope") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestReportByCompany(t *testing.T) {
	report := testMatches().ReportByCompany()

	acme := report["Acme"]
	if len(acme) != 1 {
		t.Fatalf("expected 1 entry for Acme, got %d", len(acme))
	}

	entry := acme[0]
	if entry["total"] != "90" {
		t.Fatalf("unexpected total: %q", entry["total"])
	}
	if entry["skills_source"] != scoring.SkillsSourceHeuristic {
		t.Fatalf("unexpected skills source: %q", entry["skills_source"])
	}
	if entry["url"] != "https://example.com/1" {
		t.Fatalf("unexpected url: %q", entry["url"])
	}

	if len(report[unknownCompany]) != 1 {
		t.Fatalf("expected job without company under %q", unknownCompany)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	name, err := testMatches().DumpToTmpFile()
	if err != nil {
		t.Fatalf("dumping matches: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var dumped Matches
	if err := json.Unmarshal(data, &dumped); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if dumped.Len() != 4 || dumped.Items[0].Job.ID != "1" {
		t.Fatalf("unexpected dump content: %+v", dumped)
	}
}

func TestExcludedJobsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("reading missing exclude file: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(excluded.Items))
	}

	m := testMatches()
	excluded.Append(m.ToExcluded())
	excluded.Append(m.ToExcluded())
	if len(excluded.Items) != 4 {
		t.Fatalf("expected duplicates to be skipped, got %d", len(excluded.Items))
	}

	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	// A shorter list must not leave stale bytes behind.
	short := &ExcludedJobs{Items: excluded.Items[:1]}
	if err := short.ToFile(path); err != nil {
		t.Fatalf("rewriting exclude file: %v", err)
	}

	loaded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("reading exclude file: %v", err)
	}
	if !reflect.DeepEqual(loaded.IDs(), []string{"1"}) {
		t.Fatalf("unexpected ids: %v", loaded.IDs())
	}
	if loaded.Items[0].Company != "Acme" || loaded.Items[0].Total != 90 {
		t.Fatalf("unexpected excluded job: %+v", loaded.Items[0])
	}
}

func TestGetExcludedJobsFromEmptyFile(t *testing.T) {
	path := writeDocument(t, "exclude.json", "")

	excluded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("reading empty exclude file: %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(excluded.Items))
	}
}
