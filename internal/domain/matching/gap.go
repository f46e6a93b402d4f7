package matching

import "github.com/google/uuid"

// ComputeGaps classifies every requirement of a job against the user's
// proficiency map and accumulates the weighted credit. Requirements the user
// has no row for count as current level 0. The caller guarantees reqs is
// non-empty; a job without structured requirements goes through LegacyMatch
// instead.
func ComputeGaps(reqs []Requirement, proficiencies map[uuid.UUID]Proficiency, cfg Config) GapReport {
	cfg = cfg.normalized()

	rep := GapReport{
		Matched:           make([]SkillDetail, 0, len(reqs)),
		Weak:              make([]SkillDetail, 0),
		Missing:           make([]SkillDetail, 0),
		TotalRequirements: len(reqs),
	}

	for _, r := range reqs {
		current := 0.0
		if p, ok := proficiencies[r.SkillID]; ok {
			current = p.Level
		}

		gap := r.RequiredLevel - current
		if gap < 0 {
			gap = 0
		}

		skillWeight := r.Weight * (1 + r.Criticality)
		rep.TotalWeight += skillWeight

		if r.IsMandatory {
			rep.MandatoryTotal++
		}

		detail := SkillDetail{
			SkillName:     r.SkillName,
			RequiredLevel: r.RequiredLevel,
			CurrentLevel:  current,
			Gap:           gap,
			IsMandatory:   r.IsMandatory,
			Criticality:   CriticalityLabel(r.Criticality),
		}

		switch {
		case current >= r.RequiredLevel:
			rep.EarnedWeight += skillWeight
			if r.IsMandatory {
				rep.MandatoryMet++
			}
			rep.Matched = append(rep.Matched, detail)
		case current > 0:
			// Partial credit, damped: a weak skill is worth less per unit
			// of proficiency than a matched one.
			if r.RequiredLevel > 0 {
				rep.EarnedWeight += skillWeight * (current / r.RequiredLevel) * cfg.PartialCreditDamping
				detail.GapPercentage = gap / r.RequiredLevel * 100
			}
			rep.Weak = append(rep.Weak, detail)
		default:
			rep.Missing = append(rep.Missing, detail)
		}
	}

	return rep
}

// Score converts a gap report into the 0-100 weighted percentage. A zero
// total weight (all requirement weights zero, malformed data) scores 0
// instead of dividing by zero.
func Score(rep GapReport) float64 {
	if rep.TotalWeight <= 0 {
		return 0
	}
	s := 100 * rep.EarnedWeight / rep.TotalWeight
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
