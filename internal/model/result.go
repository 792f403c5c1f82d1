package model

// ResultSource indicates which path produced a categorization.
type ResultSource string

// Result source constants.
const (
	// SourceFastPath is the local statistical classifier.
	SourceFastPath ResultSource = "fast_path"
	// SourceRemote is a validated remote inference response.
	SourceRemote ResultSource = "remote"
	// SourceFallback is the fast-path guess returned after the smart path
	// degraded; always low confidence.
	SourceFallback ResultSource = "fallback"
)

// CategorizationResult is the unified answer the orchestrator returns. A
// categorization request always yields one of these, possibly degraded, never
// a hard error.
type CategorizationResult struct {
	Category   string
	Source     ResultSource
	Confidence ConfidenceResult
	Issues     []Issue
	Degraded   bool
	Disclaimer bool
}
