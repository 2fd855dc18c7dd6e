package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEducationLevelScore(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"PhD":               100,
		"Doctorate in Law":  100,
		"Master of Science": 90,
		"MBA":               90,
		"Bachelor of Arts":  80,
		"BS":                80,
		"Associate Degree":  70,
		"Certificate":       60,
		"High School":       50,
		"self taught":       50,
		"":                  50,
	}

	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, EducationLevelScore(level))
		})
	}
}

func TestEducationScore(t *testing.T) {
	t.Parallel()

	now := fixedNow()

	tests := []struct {
		name      string
		education []EducationEntry
		job       *JobPosting
		want      int
	}{
		{name: "no education", job: &JobPosting{}, want: 40},
		{
			name:      "doctorate without field",
			education: []EducationEntry{{Level: "PhD"}},
			job:       &JobPosting{},
			want:      100,
		},
		{
			name:      "field named in description",
			education: []EducationEntry{{Level: "Bachelor of Science", FieldOfStudy: "Computer Science"}},
			job:       &JobPosting{Description: "We need someone with a Computer Science degree"},
			want:      100,
		},
		{
			name:      "field inside another word",
			education: []EducationEntry{{Level: "Bachelor", FieldOfStudy: "Law"}},
			job:       &JobPosting{Description: "Flawless delivery"},
			want:      80,
		},
		{
			name:      "short field is matched as a word",
			education: []EducationEntry{{Level: "Bachelor", FieldOfStudy: "IT"}},
			job:       &JobPosting{Description: "Work with us"},
			want:      95,
		},
		{
			name:      "relevant field",
			education: []EducationEntry{{Level: "Associate", FieldOfStudy: "Nursing"}},
			job:       &JobPosting{},
			want:      85,
		},
		{
			name:      "relevant job title",
			education: []EducationEntry{{Level: "Bachelor", FieldOfStudy: "Philosophy"}},
			job:       &JobPosting{Title: "Software Engineer"},
			want:      95,
		},
		{
			name:      "no relevance",
			education: []EducationEntry{{Level: "Bachelor", FieldOfStudy: "Philosophy"}},
			job:       &JobPosting{Description: "Work with us"},
			want:      80,
		},
		{
			name:      "recent graduate",
			education: []EducationEntry{{Level: "Certificate", GraduationDate: date(2023, 1, 1)}},
			job:       &JobPosting{},
			want:      65,
		},
		{
			name:      "old graduate",
			education: []EducationEntry{{Level: "Certificate", GraduationDate: date(2010, 1, 1)}},
			job:       &JobPosting{},
			want:      60,
		},
		{
			name: "only the first record counts",
			education: []EducationEntry{
				{Level: "High School"},
				{Level: "PhD"},
			},
			job:  &JobPosting{},
			want: 50,
		},
		{
			name:      "capped at 100",
			education: []EducationEntry{{Level: "Master", FieldOfStudy: "Data Science", GraduationDate: date(2024, 1, 1)}},
			job:       &JobPosting{Description: "data science team"},
			want:      100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EducationScore(tt.education, tt.job, now))
		})
	}
}

func TestHasRelevanceKeywordMatchesWholeWords(t *testing.T) {
	assert.False(t, hasRelevanceKeyword("Work with us"))
	assert.True(t, hasRelevanceKeyword("Emerging technologies"))
	assert.True(t, hasRelevanceKeyword("IT support"))
	assert.False(t, hasRelevanceKeyword(""))
}
