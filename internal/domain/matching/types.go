package matching

import "github.com/google/uuid"

// ProficiencyStatus distinguishes self-reported levels from levels backed by
// a passing assessment attempt.
type ProficiencyStatus string

const (
	StatusClaimed  ProficiencyStatus = "claimed"
	StatusVerified ProficiencyStatus = "verified"
)

type SkillType string

const (
	SkillTypeMustHave   SkillType = "must_have"
	SkillTypeImportant  SkillType = "important"
	SkillTypeNiceToHave SkillType = "nice_to_have"
)

// Proficiency is one (user, skill) level on the 0-10 scale.
type Proficiency struct {
	SkillID   uuid.UUID
	SkillName string
	Level     float64
	Status    ProficiencyStatus
}

// Requirement is one (job, skill) requirement row.
type Requirement struct {
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel float64
	Criticality   float64
	IsMandatory   bool
	Weight        float64
	SkillType     SkillType
}

// Status is the eligibility verdict. The string values are a wire contract
// consumed by dashboards and must not change.
type Status string

const (
	Eligible       Status = "Eligible"
	AlmostEligible Status = "Almost Eligible"
	NotEligible    Status = "Not Eligible"
)

// SkillDetail is one requirement's classification inside a result. Field
// names are part of the exposed JSON contract.
type SkillDetail struct {
	SkillName     string  `json:"skill_name"`
	RequiredLevel float64 `json:"required_level"`
	CurrentLevel  float64 `json:"current_level"`
	Gap           float64 `json:"gap"`
	GapPercentage float64 `json:"gap_percentage,omitempty"`
	IsMandatory   bool    `json:"is_mandatory"`
	Criticality   string  `json:"criticality"`
}

// GapReport is the gap calculator's output, consumed by the classifier.
type GapReport struct {
	Matched           []SkillDetail
	Weak              []SkillDetail
	Missing           []SkillDetail
	MandatoryMet      int
	MandatoryTotal    int
	TotalRequirements int
	TotalWeight       float64
	EarnedWeight      float64
}

// Result is the full per-(user, job) verdict.
type Result struct {
	OverallScore      float64       `json:"overall_score"`
	EligibilityStatus Status        `json:"eligibility_status"`
	Indicator         string        `json:"indicator"`
	MatchedSkills     []SkillDetail `json:"matched_skills"`
	WeakSkills        []SkillDetail `json:"weak_skills"`
	MissingSkills     []SkillDetail `json:"missing_skills"`
	MandatoryMet      int           `json:"mandatory_met"`
	MandatoryTotal    int           `json:"mandatory_total"`
	Recommendation    string        `json:"recommendation"`
	CanApply          bool          `json:"can_apply"`
}

// CriticalityLabel maps the continuous 0-1 criticality onto the label shown
// in skill detail rows.
func CriticalityLabel(c float64) string {
	switch {
	case c >= 0.7:
		return "High"
	case c >= 0.4:
		return "Medium"
	default:
		return "Low"
	}
}
