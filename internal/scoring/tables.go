package scoring

import (
	"strings"

	"github.com/spigell/jobmatch/internal/textnorm"
)

// skillSynonyms maps a canonical skill to its known aliases.
//
//nolint:gochecknoglobals // Static lookup data, never mutated
var skillSynonyms = map[string][]string{
	"javascript":       {"js", "ecmascript", "es6", "vanilla js"},
	"typescript":       {"ts"},
	"react":            {"react.js", "reactjs", "react native"},
	"vue":              {"vue.js", "vuejs", "nuxt"},
	"angular":          {"angular.js", "angularjs"},
	"node":             {"node.js", "nodejs"},
	"express":          {"express.js", "expressjs"},
	"next":             {"next.js", "nextjs"},
	"python":           {"py", "python3"},
	"go":               {"golang"},
	"c#":               {"csharp", "c sharp", ".net", "dotnet"},
	"c++":              {"cpp", "cplusplus"},
	"java":             {"jdk", "java se", "java ee"},
	"kotlin":           {"kt"},
	"ruby on rails":    {"rails", "ror"},
	"postgresql":       {"postgres", "psql"},
	"mysql":            {"mariadb"},
	"mongodb":          {"mongo"},
	"kubernetes":       {"k8s"},
	"docker":           {"containers", "containerization"},
	"google cloud":     {"gcp", "google cloud platform"},
	"azure":            {"microsoft azure"},
	"machine learning": {"ml"},

	"amazon web services":         {"aws", "amazon aws"},
	"artificial intelligence":     {"ai"},
	"natural language processing": {"nlp"},

	"ci/cd":           {"cicd", "ci cd", "continuous integration", "continuous delivery"},
	"rest api":        {"rest", "restful", "restful api"},
	"graphql":         {"gql"},
	"html":            {"html5"},
	"css":             {"css3", "scss", "sass"},
	"user experience": {"ux", "ux design"},
	"user interface":  {"ui", "ui design"},
}

//nolint:gochecknoglobals // Built once from skillSynonyms
var canonicalSkills = buildCanonicalIndex(skillSynonyms)

// relevanceKeywords mark a field of study or a job as belonging to a
// recognizable professional domain.
//
//nolint:gochecknoglobals // Static lookup data, never mutated
var relevanceKeywords = []string{
	"computer", "software", "technology", "information", "engineering", "data",
	"science", "mathematics", "statistics", "programming", "it",
	"business", "management", "marketing", "economics", "administration",
	"design", "graphic", "art", "media", "communication",
	"health", "medicine", "nursing", "pharmacy", "biology",
	"finance", "accounting", "banking",
}

type country struct {
	name    string
	aliases []string
}

// countries lists canonical country names with alternative spellings. Order
// breaks ties when two entries match at the same position.
//
//nolint:gochecknoglobals // Static lookup data, never mutated
var countries = []country{
	{name: "united states", aliases: []string{"usa", "us", "united states of america", "america"}},
	{name: "united kingdom", aliases: []string{"uk", "great britain", "england", "scotland", "wales"}},
	{name: "canada"},
	{name: "germany", aliases: []string{"deutschland"}},
	{name: "france"},
	{name: "netherlands", aliases: []string{"holland"}},
	{name: "spain"},
	{name: "italy"},
	{name: "poland"},
	{name: "india"},
	{name: "china"},
	{name: "japan"},
	{name: "australia"},
	{name: "brazil"},
	{name: "mexico"},
	{name: "nigeria"},
	{name: "kenya"},
	{name: "south africa"},
	{name: "egypt"},
	{name: "pakistan"},
	{name: "indonesia"},
	{name: "philippines"},
	{name: "turkey", aliases: []string{"turkiye"}},
	{name: "russia", aliases: []string{"russian federation"}},
	{name: "ukraine"},
	{name: "saudi arabia", aliases: []string{"ksa"}},
	{name: "singapore"},
	{name: "ireland"},
	{name: "sweden"},
	{name: "united arab emirates", aliases: []string{"uae"}},
}

type degreeStep struct {
	markers []string
	score   int
}

// educationLadder is ordered from the highest level down; the first step
// whose marker is a substring of the applicant's level wins.
//
//nolint:gochecknoglobals // Static lookup data, never mutated
var educationLadder = []degreeStep{
	{markers: []string{"phd", "doctorate"}, score: 100},
	{markers: []string{"master", "msc", "mba"}, score: 90},
	{markers: []string{"bachelor", "bs", "ba"}, score: 80},
	{markers: []string{"associate", "diploma"}, score: 70},
	{markers: []string{"certificate"}, score: 60},
	{markers: []string{"high school"}, score: 50},
}

func buildCanonicalIndex(table map[string][]string) map[string]string {
	index := make(map[string]string)
	for canonical, aliases := range table {
		index[skillKey(canonical)] = canonical
		for _, alias := range aliases {
			index[skillKey(alias)] = canonical
		}
	}
	return index
}

func skillKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// canonicalSkill resolves s through the synonym table, trying the raw
// lowercase form first and the punctuation-free form second.
func canonicalSkill(s string) (string, bool) {
	if canonical, ok := canonicalSkills[skillKey(s)]; ok {
		return canonical, true
	}
	if canonical, ok := canonicalSkills[textnorm.Clean(s)]; ok {
		return canonical, true
	}
	return "", false
}

// countryOf returns the canonical country mentioned first in location,
// matching whole words only so that "us" does not match "austin".
func countryOf(location string) (string, bool) {
	padded := " " + textnorm.Clean(location) + " "
	if strings.TrimSpace(padded) == "" {
		return "", false
	}

	best, bestAt := "", -1
	for _, c := range countries {
		for _, spelling := range append([]string{c.name}, c.aliases...) {
			at := strings.Index(padded, " "+spelling+" ")
			if at < 0 {
				continue
			}
			if bestAt < 0 || at < bestAt {
				best, bestAt = c.name, at
			}
		}
	}
	return best, bestAt >= 0
}
