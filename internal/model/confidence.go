package model

// ConfidenceTier buckets a confidence score.
type ConfidenceTier string

// Confidence tier constants.
const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// Decision is the routing outcome derived from a confidence score.
type Decision string

// Decision constants.
const (
	// DecisionAccept uses the result as-is.
	DecisionAccept Decision = "accept"
	// DecisionAcceptWithDisclaimer uses the result but flags it for the user.
	DecisionAcceptWithDisclaimer Decision = "accept_with_disclaimer"
	// DecisionReject routes the request to the smart path.
	DecisionReject Decision = "reject"
)

// Factor is a single named contribution to a confidence score. Factors keep
// insertion order so score breakdowns render deterministically.
type Factor struct {
	Name         string
	Contribution float64
}

// ConfidenceResult is the scored reliability of a classification, threaded as
// one value through every call site. Score is always within [0,1]; Tier and
// Decision are derived from Score and the configured thresholds.
type ConfidenceResult struct {
	Tier     ConfidenceTier
	Decision Decision
	Factors  []Factor
	Score    float64
}

// Accepted reports whether the decision keeps the fast-path result.
func (r ConfidenceResult) Accepted() bool {
	return r.Decision == DecisionAccept || r.Decision == DecisionAcceptWithDisclaimer
}
