package model

// IssueCode tags a validation finding.
type IssueCode string

// Validation issue codes.
const (
	// IssueMalformedOutput means the response did not parse into the shape
	// the request mode requires.
	IssueMalformedOutput IssueCode = "MALFORMED_OUTPUT"
	// IssueUnknownCategory means a label referenced a category outside the
	// fixed taxonomy; the entry is dropped, never invented.
	IssueUnknownCategory IssueCode = "UNKNOWN_CATEGORY"
	// IssueArithmeticMismatch means an embedded aggregate did not match
	// independent recomputation from source facts.
	IssueArithmeticMismatch IssueCode = "ARITHMETIC_MISMATCH"
	// IssuePIIDetected means personally-identifying substrings were found
	// and redacted.
	IssuePIIDetected IssueCode = "PII_DETECTED"
)

// Issue is a single tagged validation finding.
type Issue struct {
	Code   IssueCode
	Detail string
}

// LabeledEntry is one structured labeling result from a parse-mode response.
type LabeledEntry struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

// ValidationResult is the outcome of checking a raw remote response. When
// IsSafe is false and the request mode requires structured data, the caller
// must not persist or display SanitizedContent without explicit fallback
// labeling.
type ValidationResult struct {
	SanitizedContent string
	Issues           []Issue
	Labels           []LabeledEntry
	IsSafe           bool
}

// HasIssue reports whether the result carries a finding with the given code.
func (r ValidationResult) HasIssue(code IssueCode) bool {
	for _, issue := range r.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
