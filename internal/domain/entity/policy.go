package entity

// PolicyRecord is an operational policy returned by the policy advisor.
type PolicyRecord struct {
	PolicyID   string  `bson:"policyId" json:"policy_id"`
	Title      string  `bson:"title" json:"title"`
	PolicyText string  `bson:"policyText" json:"policy_text"`
	Score      float64 `bson:"score" json:"score"`
}

// Rationale is the advisor's free-text narrative around a decision the
// rule engine has already made. It never drives the decision itself.
type Rationale struct {
	Decision  string `json:"decision"`
	Rationale string `json:"rationale"`
}

// DefaultRationale is used when the advisor errors or times out.
const DefaultRationale = "Escalate to duty manager for case-by-case guidance."

// FallbackPolicy returns the record substituted whenever the advisor
// fails or its confidence is below threshold. Callers never see nil.
func FallbackPolicy() *PolicyRecord {
	return &PolicyRecord{
		PolicyID:   "fallback",
		Title:      "General Escalation",
		PolicyText: "Situation requires manual review. Escalate to duty manager for case-by-case guidance.",
		Score:      0.0,
	}
}
