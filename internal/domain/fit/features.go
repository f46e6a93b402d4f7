package fit

import (
	"math"

	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

// FeatureNames is the canonical ordering of the engineered feature vector.
// Index positions are frozen: the persisted forest refers to features by
// index, and the report's feature_importance mapping uses these names.
var FeatureNames = []string{
	"skill_jaccard",
	"weighted_coverage",
	"matched_ratio",
	"weak_ratio",
	"missing_ratio",
	"mandatory_coverage",
	"avg_proficiency",
	"max_proficiency",
	"verified_skill_ratio",
	"experience_years",
	"required_experience_years",
	"experience_delta",
	"education_level",
	"education_delta",
	"profile_completeness",
	"best_assessment_score",
	"avg_assessment_score",
	"assessment_count",
	"text_similarity",
	"user_skill_count",
	"job_requirement_count",
	"rule_score",
	"criticality_weighted_gap",
}

// NumFeatures is the dimensionality of the engineered vector.
var NumFeatures = len(FeatureNames)

// AssessmentScore is one assessment attempt result on the 0-100 scale.
type AssessmentScore struct {
	SkillID uuid.UUID
	Score   float64
	Passed  bool
}

// CandidateProfile is everything the feature extractor needs about a user.
type CandidateProfile struct {
	UserID              uuid.UUID
	ExperienceYears     float64
	EducationLevel      int // ordinal: 0 none .. 5 doctorate
	ProfileCompleteness float64
	Objective           string
	SkillsText          string
	Proficiencies       []matching.Proficiency
	Assessments         []AssessmentScore
}

// JobPosting is everything the feature extractor needs about a job.
type JobPosting struct {
	JobID                   uuid.UUID
	Description             string
	SkillsText              string
	RequiredExperienceYears float64
	MinEducationLevel       int
	Requirements            []matching.Requirement
}

// Features engineers the fixed-width vector for one (candidate, job) pair.
// It is a pure function; the rule-based engine is reused for the coverage
// and gap signals so both paths agree on what a gap is.
func Features(user CandidateProfile, job JobPosting, cfg matching.Config) []float64 {
	f := make([]float64, NumFeatures)

	profByID := make(map[uuid.UUID]matching.Proficiency, len(user.Proficiencies))
	userSkillSet := make(map[uuid.UUID]bool, len(user.Proficiencies))
	verified := 0
	var profSum, profMax float64
	for _, p := range user.Proficiencies {
		profByID[p.SkillID] = p
		userSkillSet[p.SkillID] = true
		if p.Status == matching.StatusVerified {
			verified++
		}
		profSum += p.Level
		if p.Level > profMax {
			profMax = p.Level
		}
	}

	jobSkillSet := make(map[uuid.UUID]bool, len(job.Requirements))
	for _, r := range job.Requirements {
		jobSkillSet[r.SkillID] = true
	}

	f[0] = jaccard(userSkillSet, jobSkillSet)

	if len(job.Requirements) > 0 {
		rep := matching.ComputeGaps(job.Requirements, profByID, cfg)
		total := float64(rep.TotalRequirements)
		f[1] = matching.Score(rep) / 100
		f[2] = float64(len(rep.Matched)) / total
		f[3] = float64(len(rep.Weak)) / total
		f[4] = float64(len(rep.Missing)) / total
		if rep.MandatoryTotal > 0 {
			f[5] = float64(rep.MandatoryMet) / float64(rep.MandatoryTotal)
		} else {
			f[5] = 1
		}
		f[21] = matching.Score(rep) / 100
		f[22] = criticalityWeightedGap(job.Requirements, profByID)
	} else {
		f[5] = 1
	}

	if n := len(user.Proficiencies); n > 0 {
		f[6] = profSum / float64(n) / 10
		f[7] = profMax / 10
		f[8] = float64(verified) / float64(n)
	}

	f[9] = user.ExperienceYears
	f[10] = job.RequiredExperienceYears
	f[11] = user.ExperienceYears - job.RequiredExperienceYears
	f[12] = float64(user.EducationLevel) / 5
	f[13] = float64(user.EducationLevel - job.MinEducationLevel)
	f[14] = clamp01(user.ProfileCompleteness)

	best, avg, count := assessmentSignals(user.Assessments, jobSkillSet)
	f[15] = best / 100
	f[16] = avg / 100
	f[17] = count

	f[18] = textSimilarity(user.Objective+" "+user.SkillsText, job.Description)
	f[19] = float64(len(user.Proficiencies))
	f[20] = float64(len(job.Requirements))

	return f
}

func jaccard(a, b map[uuid.UUID]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for id := range a {
		if b[id] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// criticalityWeightedGap sums each requirement's gap scaled by its weight
// and criticality, normalized so a candidate missing everything scores 1.
func criticalityWeightedGap(reqs []matching.Requirement, profs map[uuid.UUID]matching.Proficiency) float64 {
	var gap, worst float64
	for _, r := range reqs {
		current := 0.0
		if p, ok := profs[r.SkillID]; ok {
			current = p.Level
		}
		g := r.RequiredLevel - current
		if g < 0 {
			g = 0
		}
		w := r.Weight * (1 + r.Criticality)
		gap += g * w
		worst += r.RequiredLevel * w
	}
	if worst <= 0 {
		return 0
	}
	return gap / worst
}

// assessmentSignals returns the best verified score among skills the job
// requires, the average over all attempts, and the attempt count.
func assessmentSignals(attempts []AssessmentScore, jobSkills map[uuid.UUID]bool) (best, avg, count float64) {
	var sum float64
	for _, a := range attempts {
		sum += a.Score
		count++
		if a.Passed && jobSkills[a.SkillID] && a.Score > best {
			best = a.Score
		}
	}
	if count > 0 {
		avg = sum / count
	}
	return best, avg, count
}

// textSimilarity is a cosine-style overlap between the keyword sets of the
// two blobs, sharing the legacy matcher's tokenizer.
func textSimilarity(a, b string) float64 {
	ka := matching.Tokenize(a)
	kb := matching.Tokenize(b)
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	inter := 0
	for kw := range ka {
		if kb[kw] {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(ka))*float64(len(kb)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
