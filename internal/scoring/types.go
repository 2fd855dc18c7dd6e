package scoring

import "time"

// ExperienceEntry is one work-history interval. A zero End means the position
// is current; a zero Start means the date was missing or unparseable.
type ExperienceEntry struct {
	Title   string    `json:"title,omitempty" mapstructure:"title"`
	Company string    `json:"company,omitempty" mapstructure:"company"`
	Start   time.Time `json:"start,omitempty" mapstructure:"start"`
	End     time.Time `json:"end,omitempty" mapstructure:"end"`
}

type EducationEntry struct {
	Level          string    `json:"level,omitempty" mapstructure:"level"`
	FieldOfStudy   string    `json:"field_of_study,omitempty" mapstructure:"field_of_study"`
	GraduationDate time.Time `json:"graduation_date,omitempty" mapstructure:"graduation_date"`
}

// ApplicantProfile is read-only input to the engine. Education[0] is the
// primary record.
type ApplicantProfile struct {
	ID             string            `json:"id,omitempty" mapstructure:"id"`
	Version        string            `json:"version,omitempty" mapstructure:"version"`
	Name           string            `json:"name,omitempty" mapstructure:"name"`
	Skills         []string          `json:"skills,omitempty" mapstructure:"skills"`
	Experience     []ExperienceEntry `json:"experience,omitempty" mapstructure:"experience"`
	Education      []EducationEntry  `json:"education,omitempty" mapstructure:"education"`
	Location       string            `json:"location,omitempty" mapstructure:"location"`
	ExpectedSalary *float64          `json:"expected_salary,omitempty" mapstructure:"expected_salary"`
	Certifications []string          `json:"certifications,omitempty" mapstructure:"certifications"`
	Projects       []string          `json:"projects,omitempty" mapstructure:"projects"`
	Languages      []string          `json:"languages,omitempty" mapstructure:"languages"`
	HasResume      bool              `json:"has_resume,omitempty" mapstructure:"has_resume"`
}

type SalaryRange struct {
	Min      float64 `json:"min,omitempty" mapstructure:"min"`
	Max      float64 `json:"max,omitempty" mapstructure:"max"`
	Currency string  `json:"currency,omitempty" mapstructure:"currency"`
}

// JobPosting is read-only input to the engine.
type JobPosting struct {
	ID              string      `json:"id,omitempty" mapstructure:"id"`
	Version         string      `json:"version,omitempty" mapstructure:"version"`
	Title           string      `json:"title,omitempty" mapstructure:"title"`
	Company         string      `json:"company,omitempty" mapstructure:"company"`
	Description     string      `json:"description,omitempty" mapstructure:"description"`
	SkillsRequired  []string    `json:"skills_required,omitempty" mapstructure:"skills_required"`
	ExperienceLevel string      `json:"experience_level,omitempty" mapstructure:"experience_level"`
	EducationLevel  string      `json:"education_level,omitempty" mapstructure:"education_level"`
	Location        string      `json:"location,omitempty" mapstructure:"location"`
	LocationType    string      `json:"location_type,omitempty" mapstructure:"location_type"`
	SalaryRange     SalaryRange `json:"salary_range,omitempty" mapstructure:"salary_range"`
	URL             string      `json:"url,omitempty" mapstructure:"url"`
}

// Breakdown holds every sub-score. Skills, Experience and Education are
// 0..100; Location and Salary are fractions in 0..1; Documents is 0 or 10;
// Bonus is 0..10.
type Breakdown struct {
	Skills     int     `json:"skills"`
	Experience int     `json:"experience"`
	Education  int     `json:"education"`
	Location   float64 `json:"location"`
	Salary     float64 `json:"salary"`
	Documents  int     `json:"documents"`
	Bonus      int     `json:"bonus"`
}

// ScoreResult is always fully populated.
type ScoreResult struct {
	Total         int       `json:"total"`
	Breakdown     Breakdown `json:"breakdown"`
	SkillsSource  string    `json:"skills_source"`
	MatchedSkills []string  `json:"matched_skills,omitempty"`
}
