package matching

// Outcome is the tagged result of matching one (user, job) pair: either the
// weighted engine ran over structured requirements, or the coarse legacy
// fallback ran because the job has none. The interface is sealed so callers
// must handle both variants instead of reading an ad hoc flag.
type Outcome interface {
	Match() Result
	IsLegacy() bool

	outcome()
}

// WeightedOutcome wraps a result produced by the weighted engine.
type WeightedOutcome struct {
	Result Result
}

func (o WeightedOutcome) Match() Result { return o.Result }
func (o WeightedOutcome) IsLegacy() bool { return false }
func (WeightedOutcome) outcome()         {}

// LegacyOutcome wraps a result produced by the free-text fallback. Its
// serialized form carries "legacy_match": true so consumers never conflate
// it with the weighted engine's semantics.
type LegacyOutcome struct {
	Result Result
}

func (o LegacyOutcome) Match() Result { return o.Result }
func (o LegacyOutcome) IsLegacy() bool { return true }
func (LegacyOutcome) outcome()         {}
