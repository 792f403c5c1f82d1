package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperwire/penny/internal/model"
)

func newTestValidator() *Validator {
	return New(model.DefaultTaxonomy(), DefaultConfig())
}

func TestValidateParseMode(t *testing.T) {
	v := newTestValidator()

	t.Run("well-formed labels pass", func(t *testing.T) {
		raw := `[{"label":"STARBUCKS #1234","category":"Coffee & Dining"},{"label":"SAFEWAY","category":"Groceries"}]`

		result := v.Validate(raw, model.ModeParse, nil)

		assert.True(t, result.IsSafe)
		assert.Empty(t, result.Issues)
		require.Len(t, result.Labels, 2)
		assert.Equal(t, "Coffee & Dining", result.Labels[0].Category)
	})

	t.Run("markdown fenced JSON is unwrapped", func(t *testing.T) {
		raw := "```json\n[{\"label\":\"SAFEWAY\",\"category\":\"Groceries\"}]\n```"

		result := v.Validate(raw, model.ModeParse, nil)

		assert.True(t, result.IsSafe)
		require.Len(t, result.Labels, 1)
	})

	t.Run("malformed structure is unsafe", func(t *testing.T) {
		result := v.Validate(`{"not":"an array"}`, model.ModeParse, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueMalformedOutput))
		assert.Empty(t, result.Labels)
	})

	t.Run("unknown category is dropped not fabricated", func(t *testing.T) {
		raw := `[{"label":"ACME CO","category":"Cryptowizardry"},{"label":"SAFEWAY","category":"Groceries"}]`

		result := v.Validate(raw, model.ModeParse, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueUnknownCategory))
		require.Len(t, result.Labels, 1)
		assert.Equal(t, "SAFEWAY", result.Labels[0].Label)
	})

	t.Run("category names are canonicalized", func(t *testing.T) {
		raw := `[{"label":"SAFEWAY","category":"groceries"}]`

		result := v.Validate(raw, model.ModeParse, nil)

		assert.True(t, result.IsSafe)
		require.Len(t, result.Labels, 1)
		assert.Equal(t, "Groceries", result.Labels[0].Category)
	})

	t.Run("arithmetic hallucination in a label", func(t *testing.T) {
		raw := `[{"label":"Starbucks $6.50 + $156.23 = $200.00","category":"Coffee & Dining"}]`

		result := v.Validate(raw, model.ModeParse, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueArithmeticMismatch))
	})
}

func TestValidateFreeText(t *testing.T) {
	v := newTestValidator()

	t.Run("plain advice passes", func(t *testing.T) {
		result := v.Validate("Consider moving dining spend into a weekly budget.", model.ModeChat, nil)

		assert.True(t, result.IsSafe)
		assert.Empty(t, result.Issues)
	})

	t.Run("empty response is malformed", func(t *testing.T) {
		result := v.Validate("   ", model.ModeAnalyze, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueMalformedOutput))
	})

	t.Run("correct sum within tolerance passes", func(t *testing.T) {
		result := v.Validate("You spent $6.50 + $156.23 = $162.73 this week.", model.ModeAnalyze, nil)

		assert.True(t, result.IsSafe)
	})

	t.Run("wrong sum is flagged", func(t *testing.T) {
		result := v.Validate("You spent $6.50 + $156.23 = $200.00 this week.", model.ModeAnalyze, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueArithmeticMismatch))
	})

	t.Run("wrong percentage is flagged", func(t *testing.T) {
		result := v.Validate("Dining is 25% of $400.00 = $90.00 of your budget.", model.ModeAnalyze, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssueArithmeticMismatch))
	})

	t.Run("correct percentage passes", func(t *testing.T) {
		result := v.Validate("Dining is 25% of $400.00 = $100.00 of your budget.", model.ModeAnalyze, nil)

		assert.True(t, result.IsSafe)
	})

	t.Run("total claim checked against source facts", func(t *testing.T) {
		facts := map[string]string{"total": "162.73"}

		good := v.Validate("Your total: $162.73 across 2 purchases.", model.ModeAnalyze, facts)
		assert.True(t, good.IsSafe)

		bad := v.Validate("Your total: $500.00 across 2 purchases.", model.ModeAnalyze, facts)
		assert.False(t, bad.IsSafe)
		assert.True(t, bad.HasIssue(model.IssueArithmeticMismatch))
	})

	t.Run("total claim without trusted total is not checked", func(t *testing.T) {
		result := v.Validate("Your total: $500.00 across 2 purchases.", model.ModeAnalyze, nil)

		assert.True(t, result.IsSafe)
	})
}

func TestValidatePIIRedaction(t *testing.T) {
	v := newTestValidator()

	t.Run("account numbers are redacted", func(t *testing.T) {
		result := v.Validate("Transfer from account 123456789012 completed.", model.ModeChat, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssuePIIDetected))
		assert.NotContains(t, result.SanitizedContent, "123456789012")
		assert.Contains(t, result.SanitizedContent, "[REDACTED]")
	})

	t.Run("emails are redacted", func(t *testing.T) {
		result := v.Validate("Receipt sent to jane.doe@example.com yesterday.", model.ModeChat, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssuePIIDetected))
		assert.NotContains(t, result.SanitizedContent, "jane.doe@example.com")
	})

	t.Run("currency amounts survive redaction", func(t *testing.T) {
		result := v.Validate("You spent $156.23 at SAFEWAY.", model.ModeChat, nil)

		assert.True(t, result.IsSafe)
		assert.Contains(t, result.SanitizedContent, "$156.23")
	})

	t.Run("labels are redacted in parse mode", func(t *testing.T) {
		raw := `[{"label":"CHECK DEPOSIT acct 98765432101","category":"Transfers"}]`

		result := v.Validate(raw, model.ModeParse, nil)

		assert.False(t, result.IsSafe)
		assert.True(t, result.HasIssue(model.IssuePIIDetected))
		require.Len(t, result.Labels, 1)
		assert.NotContains(t, result.Labels[0].Label, "98765432101")
	})
}

func TestValidateUnknownMode(t *testing.T) {
	v := newTestValidator()

	result := v.Validate("anything", model.RequestMode("summarize"), nil)

	assert.False(t, result.IsSafe)
	assert.True(t, result.HasIssue(model.IssueMalformedOutput))
}
