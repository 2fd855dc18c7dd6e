package scoring

const (
	exactSkillBonus   = 2
	maxCertBonus      = 5
	projectsBonus     = 3
	multilingualBonus = 2
	maxBonus          = 10
)

// Bonus rewards exact skill hits, certifications, projects and speaking more
// than one language. The total is capped at 10.
func Bonus(profile *ApplicantProfile, job *JobPosting) int {
	bonus := exactSkillBonus * len(exactMatches(profile.Skills, job.SkillsRequired))

	certs := len(nonEmpty(profile.Certifications))
	if certs > maxCertBonus {
		certs = maxCertBonus
	}
	bonus += certs

	if len(nonEmpty(profile.Projects)) > 0 {
		bonus += projectsBonus
	}

	if len(nonEmpty(profile.Languages)) > 1 {
		bonus += multilingualBonus
	}

	if bonus > maxBonus {
		bonus = maxBonus
	}
	return bonus
}
