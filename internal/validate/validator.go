// Package validate checks remote inference responses before they are trusted.
//
// The design principle: classification and labeling are trusted from the
// remote service, arithmetic never is. Any aggregate number in a response is
// recomputed independently before the response can be marked safe.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/copperwire/penny/internal/model"
)

// Config holds validator tunables.
type Config struct {
	// ArithmeticTolerance is the maximum allowed difference between a
	// claimed aggregate and its recomputation, in currency units.
	ArithmeticTolerance decimal.Decimal
}

// DefaultConfig returns the default validator configuration.
func DefaultConfig() Config {
	return Config{
		ArithmeticTolerance: decimal.NewFromFloat(0.01),
	}
}

// Validator structurally validates and sanitizes remote responses.
type Validator struct {
	taxonomy  *model.Taxonomy
	tolerance decimal.Decimal
}

// New creates a validator bound to a category taxonomy.
func New(taxonomy *model.Taxonomy, cfg Config) *Validator {
	tolerance := cfg.ArithmeticTolerance
	if tolerance.IsZero() {
		tolerance = DefaultConfig().ArithmeticTolerance
	}
	return &Validator{taxonomy: taxonomy, tolerance: tolerance}
}

// Validate checks a raw remote response against the request mode and the
// caller's source facts. IsSafe is false whenever any check fails, even if
// the sanitized content is still partially usable.
func (v *Validator) Validate(raw string, mode model.RequestMode, sourceFacts map[string]string) model.ValidationResult {
	switch mode {
	case model.ModeParse:
		return v.validateParse(raw, sourceFacts)
	case model.ModeChat, model.ModeAnalyze:
		return v.validateFreeText(raw, sourceFacts)
	default:
		return model.ValidationResult{
			IsSafe: false,
			Issues: []model.Issue{{
				Code:   model.IssueMalformedOutput,
				Detail: fmt.Sprintf("unsupported request mode %q", mode),
			}},
		}
	}
}

// validateParse expects a JSON array of {label, category} entries.
func (v *Validator) validateParse(raw string, sourceFacts map[string]string) model.ValidationResult {
	var issues []model.Issue

	content := stripCodeFence(raw)

	var entries []model.LabeledEntry
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return model.ValidationResult{
			IsSafe: false,
			Issues: []model.Issue{{
				Code:   model.IssueMalformedOutput,
				Detail: fmt.Sprintf("parse mode response is not a label array: %v", err),
			}},
		}
	}

	// Unknown categories are dropped, never fabricated.
	kept := make([]model.LabeledEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Category != "" && !v.taxonomy.Contains(entry.Category) {
			issues = append(issues, model.Issue{
				Code:   model.IssueUnknownCategory,
				Detail: fmt.Sprintf("category %q is not in the taxonomy", entry.Category),
			})
			continue
		}
		if cat, ok := v.taxonomy.Lookup(entry.Category); ok {
			entry.Category = cat.Name
		}
		kept = append(kept, entry)
	}

	for _, entry := range kept {
		issues = append(issues, v.checkArithmetic(entry.Label, sourceFacts)...)
	}

	redacted := make([]model.LabeledEntry, len(kept))
	piiFound := false
	for i, entry := range kept {
		label, found := redactPII(entry.Label)
		piiFound = piiFound || found
		redacted[i] = model.LabeledEntry{Label: label, Category: entry.Category}
	}
	if piiFound {
		issues = append(issues, model.Issue{
			Code:   model.IssuePIIDetected,
			Detail: "personally-identifying substrings redacted from labels",
		})
	}

	sanitized, err := json.Marshal(redacted)
	if err != nil {
		issues = append(issues, model.Issue{
			Code:   model.IssueMalformedOutput,
			Detail: fmt.Sprintf("failed to re-encode sanitized labels: %v", err),
		})
	}

	return model.ValidationResult{
		IsSafe:           len(issues) == 0,
		Issues:           issues,
		Labels:           redacted,
		SanitizedContent: string(sanitized),
	}
}

// validateFreeText checks chat/analyze responses: arithmetic claims and PII
// only, no structural requirements.
func (v *Validator) validateFreeText(raw string, sourceFacts map[string]string) model.ValidationResult {
	var issues []model.Issue

	content := strings.TrimSpace(raw)
	if content == "" {
		return model.ValidationResult{
			IsSafe: false,
			Issues: []model.Issue{{
				Code:   model.IssueMalformedOutput,
				Detail: "empty response",
			}},
		}
	}

	issues = append(issues, v.checkArithmetic(content, sourceFacts)...)

	sanitized, piiFound := redactPII(content)
	if piiFound {
		issues = append(issues, model.Issue{
			Code:   model.IssuePIIDetected,
			Detail: "personally-identifying substrings redacted",
		})
	}

	return model.ValidationResult{
		IsSafe:           len(issues) == 0,
		Issues:           issues,
		SanitizedContent: sanitized,
	}
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
