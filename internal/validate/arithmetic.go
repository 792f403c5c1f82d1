package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/copperwire/penny/internal/model"
)

var (
	// "$6.50 + $156.23 = $200.00" and longer chains.
	sumClaimPattern = regexp.MustCompile(`(\$?\d[\d,]*(?:\.\d+)?(?:\s*\+\s*\$?\d[\d,]*(?:\.\d+)?)+)\s*=\s*(\$?\d[\d,]*(?:\.\d+)?)`)

	// "25% of $400.00 is $90.00" / "= $90.00".
	percentClaimPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)%\s+of\s+(\$?\d[\d,]*(?:\.\d+)?)\s*(?:=|is)\s*(\$?\d[\d,]*(?:\.\d+)?)`)

	// "total: $123.45" / "total of $123.45", checked against the caller's
	// own total when one is supplied.
	totalClaimPattern = regexp.MustCompile(`(?i)total(?:\s+of)?\s*:?\s*(\$?\d[\d,]*(?:\.\d+)?)`)
)

// checkArithmetic recomputes every aggregate the text claims and reports a
// mismatch finding for each one that disagrees beyond the tolerance.
func (v *Validator) checkArithmetic(text string, sourceFacts map[string]string) []model.Issue {
	var issues []model.Issue

	for _, match := range sumClaimPattern.FindAllStringSubmatch(text, -1) {
		terms := strings.Split(match[1], "+")
		sum := decimal.Zero
		valid := true
		for _, term := range terms {
			amount, err := parseAmount(term)
			if err != nil {
				valid = false
				break
			}
			sum = sum.Add(amount)
		}
		if !valid {
			continue
		}
		claimed, err := parseAmount(match[2])
		if err != nil {
			continue
		}
		if claimed.Sub(sum).Abs().GreaterThan(v.tolerance) {
			issues = append(issues, model.Issue{
				Code:   model.IssueArithmeticMismatch,
				Detail: fmt.Sprintf("claimed sum %s but terms add to %s", claimed.StringFixed(2), sum.StringFixed(2)),
			})
		}
	}

	for _, match := range percentClaimPattern.FindAllStringSubmatch(text, -1) {
		percent, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
		if err != nil {
			continue
		}
		base, err := parseAmount(match[2])
		if err != nil {
			continue
		}
		claimed, err := parseAmount(match[3])
		if err != nil {
			continue
		}
		expected := base.Mul(percent).Div(decimal.NewFromInt(100))
		if claimed.Sub(expected).Abs().GreaterThan(v.tolerance) {
			issues = append(issues, model.Issue{
				Code:   model.IssueArithmeticMismatch,
				Detail: fmt.Sprintf("claimed %s%% of %s is %s but recomputed %s", match[1], base.StringFixed(2), claimed.StringFixed(2), expected.StringFixed(2)),
			})
		}
	}

	if trusted, ok := trustedTotal(sourceFacts); ok {
		for _, match := range totalClaimPattern.FindAllStringSubmatch(text, -1) {
			claimed, err := parseAmount(match[1])
			if err != nil {
				continue
			}
			if claimed.Sub(trusted).Abs().GreaterThan(v.tolerance) {
				issues = append(issues, model.Issue{
					Code:   model.IssueArithmeticMismatch,
					Detail: fmt.Sprintf("claimed total %s but source facts total %s", claimed.StringFixed(2), trusted.StringFixed(2)),
				})
			}
		}
	}

	return issues
}

// trustedTotal extracts the caller-supplied total from source facts.
func trustedTotal(sourceFacts map[string]string) (decimal.Decimal, bool) {
	raw, ok := sourceFacts["total"]
	if !ok {
		return decimal.Zero, false
	}
	total, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return total, true
}

// parseAmount parses a currency amount like "$1,234.56".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
