package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// legacyStopWords filters filler words out of free-text skill lists.
var legacyStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "etc": true,
	"skills": true, "skill": true, "knowledge": true, "experience": true,
	"proficient": true, "familiar": true, "basic": true, "advanced": true,
	"strong": true, "good": true, "working": true, "years": true,
}

// Tokenize lowercases free text into a keyword set. Technology suffixes are
// preserved by treating '+', '#' and '.' as word characters, so "c++", "c#"
// and "node.js" survive intact.
func Tokenize(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 2 && !legacyStopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// LegacyMatch scores a (user, job) pair by Jaccard overlap of the two
// free-text skill lists, scaled to 0-100. It exists for jobs posted before
// structured requirements and is only reachable when the job has zero
// requirement rows.
func LegacyMatch(userSkillsText, jobSkillsText string, cfg Config) Result {
	cfg = cfg.normalized()

	userKW := Tokenize(userSkillsText)
	jobKW := Tokenize(jobSkillsText)

	inter := 0
	missing := make([]SkillDetail, 0)
	matched := make([]SkillDetail, 0)
	for kw := range jobKW {
		if userKW[kw] {
			inter++
			matched = append(matched, SkillDetail{SkillName: kw, Criticality: CriticalityLabel(0)})
		} else {
			missing = append(missing, SkillDetail{SkillName: kw, Criticality: CriticalityLabel(0)})
		}
	}

	union := len(userKW) + len(jobKW) - inter
	score := 0.0
	if union > 0 {
		score = math.Round(float64(inter)/float64(union)*1000) / 10
	}

	var status Status
	var rec string
	switch {
	case score >= cfg.LegacyEligibleThreshold:
		status = Eligible
		rec = "Your skills overlap strongly with this role. Apply now!"
	case score >= cfg.LegacyAlmostThreshold:
		status = AlmostEligible
		rec = "Your skills partially overlap with this role. Consider applying."
	default:
		status = NotEligible
		rec = fmt.Sprintf("Low skill overlap (%.0f%%). Build the missing skills first.", score)
	}

	sortDetailsByName(matched)
	sortDetailsByName(missing)

	return Result{
		OverallScore:      score,
		EligibilityStatus: status,
		Indicator:         "Legacy Match",
		MatchedSkills:     matched,
		WeakSkills:        []SkillDetail{},
		MissingSkills:     missing,
		Recommendation:    rec,
		CanApply:          status == Eligible || status == AlmostEligible,
	}
}

func sortDetailsByName(details []SkillDetail) {
	sort.Slice(details, func(i, j int) bool {
		return details[i].SkillName < details[j].SkillName
	})
}
