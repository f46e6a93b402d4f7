package matching

// Config carries the tunable constants of the engine. The defaults mirror
// production behavior; no tuning rationale is recorded for the damping
// factor or the thresholds, so treat changes as behavior changes.
type Config struct {
	// EligibleThreshold and AlmostEligibleThreshold are the 0-100 score
	// cutoffs for the two positive verdicts.
	EligibleThreshold       float64
	AlmostEligibleThreshold float64

	// PartialCreditDamping scales the credit a weak skill earns per unit of
	// proficiency relative to a fully matched one.
	PartialCreditDamping float64

	// MinorGapMissingMax and MinorGapWeakMax gate the
	// "Minor Gaps - Apply Now" indicator inside the Almost Eligible band.
	MinorGapMissingMax int
	MinorGapWeakMax    int

	// SignificantGapMissingMin and BelowRequirementsWeakMin pick the
	// indicator inside the Not Eligible band.
	SignificantGapMissingMin int
	BelowRequirementsWeakMin int

	// LegacyEligibleThreshold and LegacyAlmostThreshold band the coarse
	// free-text fallback score.
	LegacyEligibleThreshold float64
	LegacyAlmostThreshold   float64
}

func DefaultConfig() Config {
	return Config{
		EligibleThreshold:        90,
		AlmostEligibleThreshold:  70,
		PartialCreditDamping:     0.6,
		MinorGapMissingMax:       2,
		MinorGapWeakMax:          3,
		SignificantGapMissingMin: 5,
		BelowRequirementsWeakMin: 4,
		LegacyEligibleThreshold:  70,
		LegacyAlmostThreshold:    50,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.EligibleThreshold <= 0 {
		c.EligibleThreshold = d.EligibleThreshold
	}
	if c.AlmostEligibleThreshold <= 0 {
		c.AlmostEligibleThreshold = d.AlmostEligibleThreshold
	}
	if c.PartialCreditDamping <= 0 {
		c.PartialCreditDamping = d.PartialCreditDamping
	}
	if c.MinorGapMissingMax <= 0 {
		c.MinorGapMissingMax = d.MinorGapMissingMax
	}
	if c.MinorGapWeakMax <= 0 {
		c.MinorGapWeakMax = d.MinorGapWeakMax
	}
	if c.SignificantGapMissingMin <= 0 {
		c.SignificantGapMissingMin = d.SignificantGapMissingMin
	}
	if c.BelowRequirementsWeakMin <= 0 {
		c.BelowRequirementsWeakMin = d.BelowRequirementsWeakMin
	}
	if c.LegacyEligibleThreshold <= 0 {
		c.LegacyEligibleThreshold = d.LegacyEligibleThreshold
	}
	if c.LegacyAlmostThreshold <= 0 {
		c.LegacyAlmostThreshold = d.LegacyAlmostThreshold
	}
	return c
}
