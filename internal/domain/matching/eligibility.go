package matching

import (
	"fmt"

	"github.com/google/uuid"
)

// Indicator strings shown next to the verdict. Wire contract.
const (
	IndicatorMissingCritical = "Missing Critical Skills"
	IndicatorFullyQualified  = "Fully Qualified"
	IndicatorMinorGaps       = "Minor Gaps - Apply Now"
	IndicatorSomeGaps        = "Some Skill Gaps"
	IndicatorSignificantGaps = "Significant Gaps"
	IndicatorBelowReqs       = "Below Requirements"
	IndicatorNotReady        = "Not Ready Yet"
)

// Classify turns a gap report into the eligibility verdict. The mandatory
// gate is absolute and is checked before any score threshold.
func Classify(rep GapReport, cfg Config) (Status, string, string) {
	cfg = cfg.normalized()

	score := Score(rep)
	missing := len(rep.Missing)
	weak := len(rep.Weak)

	var status Status
	var indicator string

	switch {
	case rep.MandatoryTotal > 0 && rep.MandatoryMet < rep.MandatoryTotal:
		status, indicator = NotEligible, IndicatorMissingCritical
	case score >= cfg.EligibleThreshold:
		status, indicator = Eligible, IndicatorFullyQualified
	case score >= cfg.AlmostEligibleThreshold:
		if missing <= cfg.MinorGapMissingMax && weak <= cfg.MinorGapWeakMax {
			status, indicator = AlmostEligible, IndicatorMinorGaps
		} else {
			status, indicator = AlmostEligible, IndicatorSomeGaps
		}
	case missing >= cfg.SignificantGapMissingMin:
		status, indicator = NotEligible, IndicatorSignificantGaps
	case weak >= cfg.BelowRequirementsWeakMin:
		status, indicator = NotEligible, IndicatorBelowReqs
	default:
		status, indicator = NotEligible, IndicatorNotReady
	}

	return status, indicator, recommendation(status, indicator, rep, cfg)
}

// Evaluate runs the gap calculator and the classifier for one (user, job)
// pair and assembles the full result.
func Evaluate(reqs []Requirement, proficiencies map[uuid.UUID]Proficiency, cfg Config) Result {
	rep := ComputeGaps(reqs, proficiencies, cfg)
	status, indicator, rec := Classify(rep, cfg)

	return Result{
		OverallScore:      Score(rep),
		EligibilityStatus: status,
		Indicator:         indicator,
		MatchedSkills:     rep.Matched,
		WeakSkills:        rep.Weak,
		MissingSkills:     rep.Missing,
		MandatoryMet:      rep.MandatoryMet,
		MandatoryTotal:    rep.MandatoryTotal,
		Recommendation:    rec,
		CanApply:          status == Eligible || status == AlmostEligible,
	}
}

// recommendation picks the guidance text. The branch selection is contract;
// the wording is presentation.
func recommendation(status Status, indicator string, rep GapReport, cfg Config) string {
	missing := len(rep.Missing)
	weak := len(rep.Weak)

	switch status {
	case Eligible:
		return "You meet the requirements for this role. Apply now!"
	case AlmostEligible:
		switch {
		case missing == 0:
			return fmt.Sprintf("You're close: strengthen %d weak skill(s) or apply now.", weak)
		case missing <= cfg.MinorGapMissingMax:
			return fmt.Sprintf("Learn %d missing skill(s) to become fully qualified.", missing)
		default:
			return fmt.Sprintf("Improve %d skill(s) to qualify for this role.", missing+weak)
		}
	default:
		switch {
		case indicator == IndicatorMissingCritical:
			return fmt.Sprintf("Focus on the mandatory skills first: %d of %d met.", rep.MandatoryMet, rep.MandatoryTotal)
		case missing >= cfg.SignificantGapMissingMin:
			return fmt.Sprintf("Complete learning paths to build the %d missing skill(s).", missing)
		default:
			return "Build your skills first before applying to this role."
		}
	}
}
