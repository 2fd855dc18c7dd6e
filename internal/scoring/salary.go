package scoring

// SalaryScore returns a 0..1 compatibility fraction from the ratio of the
// expected salary to the job minimum. Bands are inclusive and tested from
// the narrowest outwards, so a ratio of 0.9 never reaches a looser band.
func SalaryScore(expected *float64, job *JobPosting) float64 {
	if expected == nil || *expected <= 0 || job.SalaryRange.Min <= 0 {
		return 0.5
	}

	ratio := *expected / job.SalaryRange.Min

	switch {
	case ratio >= 0.8 && ratio <= 1.0:
		return 1.0
	case ratio >= 0.6 && ratio <= 1.2:
		return 0.7
	case ratio >= 0.5 && ratio <= 1.5:
		return 0.4
	default:
		return 0.1
	}
}
