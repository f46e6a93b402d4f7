package fit

import "math/rand"

// Sample is one labeled training row.
type Sample struct {
	Features  []float64
	Label     int
	Synthetic bool
}

// featureRange bounds one feature for each class archetype.
type featureRange struct {
	lo, hi float64
}

// Archetype ranges for synthetic generation. A strong candidate has high
// overlap, coverage and mandatory coverage with small gaps; a poor fit the
// opposite. Ranges are indexed by FeatureNames position.
var (
	positiveRanges = []featureRange{
		{0.5, 1.0},   // skill_jaccard
		{0.75, 1.0},  // weighted_coverage
		{0.6, 1.0},   // matched_ratio
		{0.0, 0.3},   // weak_ratio
		{0.0, 0.15},  // missing_ratio
		{0.9, 1.0},   // mandatory_coverage
		{0.5, 1.0},   // avg_proficiency
		{0.7, 1.0},   // max_proficiency
		{0.4, 1.0},   // verified_skill_ratio
		{2, 15},      // experience_years
		{1, 8},       // required_experience_years
		{0, 8},       // experience_delta
		{0.4, 1.0},   // education_level
		{0, 2},       // education_delta
		{0.6, 1.0},   // profile_completeness
		{0.6, 1.0},   // best_assessment_score
		{0.5, 0.95},  // avg_assessment_score
		{1, 10},      // assessment_count
		{0.2, 0.8},   // text_similarity
		{5, 30},      // user_skill_count
		{3, 12},      // job_requirement_count
		{0.75, 1.0},  // rule_score
		{0.0, 0.25},  // criticality_weighted_gap
	}
	negativeRanges = []featureRange{
		{0.0, 0.25},
		{0.0, 0.45},
		{0.0, 0.3},
		{0.0, 0.5},
		{0.3, 1.0},
		{0.0, 0.6},
		{0.0, 0.5},
		{0.1, 0.7},
		{0.0, 0.4},
		{0, 4},
		{2, 10},
		{-10, 0},
		{0.0, 0.6},
		{-3, 0},
		{0.1, 0.7},
		{0.0, 0.5},
		{0.0, 0.5},
		{0, 4},
		{0.0, 0.25},
		{1, 12},
		{3, 12},
		{0.0, 0.45},
		{0.4, 1.0},
	}
)

// SynthesizeSample draws one synthetic row for the given label.
func SynthesizeSample(label int, rng *rand.Rand) Sample {
	ranges := negativeRanges
	if label == 1 {
		ranges = positiveRanges
	}
	f := make([]float64, NumFeatures)
	for i, r := range ranges {
		f[i] = r.lo + rng.Float64()*(r.hi-r.lo)
	}
	return Sample{Features: f, Label: label, Synthetic: true}
}

// Augment tops up a sparse or imbalanced real dataset with synthetic rows:
// first the minority class is raised to parity, then both classes grow
// evenly until the target size is reached. The input slice is not modified.
func Augment(real []Sample, target int, rng *rand.Rand) []Sample {
	out := make([]Sample, len(real))
	copy(out, real)

	pos, neg := 0, 0
	for _, s := range out {
		if s.Label == 1 {
			pos++
		} else {
			neg++
		}
	}

	for pos < neg {
		out = append(out, SynthesizeSample(1, rng))
		pos++
	}
	for neg < pos {
		out = append(out, SynthesizeSample(0, rng))
		neg++
	}
	for len(out) < target {
		out = append(out, SynthesizeSample(1, rng))
		out = append(out, SynthesizeSample(0, rng))
	}
	return out
}
