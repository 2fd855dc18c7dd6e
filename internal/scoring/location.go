package scoring

import "strings"

const remoteMarker = "remote"

// LocationScore returns a 0..1 compatibility fraction. Checks run in a fixed
// order; unknown data is neutral rather than penalized.
func LocationScore(applicantLocation string, job *JobPosting) float64 {
	applicant := strings.ToLower(strings.TrimSpace(applicantLocation))
	posting := strings.ToLower(strings.TrimSpace(job.Location))

	switch {
	case applicant == "" || posting == "":
		return 0.5
	case applicant == posting:
		return 1.0
	case strings.EqualFold(strings.TrimSpace(job.LocationType), remoteMarker):
		return 0.8
	case strings.Contains(applicant, remoteMarker) || strings.Contains(posting, remoteMarker):
		return 0.7
	case strings.Contains(applicant, posting) || strings.Contains(posting, applicant):
		return 0.9
	case sameCountry(applicant, posting):
		return 0.6
	default:
		return 0.3
	}
}

func sameCountry(a, b string) bool {
	ca, ok := countryOf(a)
	if !ok {
		return false
	}
	cb, ok := countryOf(b)
	return ok && ca == cb
}
