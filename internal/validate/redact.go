package validate

import "regexp"

var (
	// Account-number-like digit runs. Card and account numbers are 6+
	// digits, possibly dash or space separated; currency amounts never
	// reach that length without a decimal point.
	accountNumberPattern = regexp.MustCompile(`\b\d(?:[ -]?\d){5,}\b`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

const redactedPlaceholder = "[REDACTED]"

// redactPII replaces account-number-like digit runs and email addresses with
// a placeholder. Returns the redacted text and whether anything was found.
func redactPII(text string) (string, bool) {
	found := false

	redacted := accountNumberPattern.ReplaceAllStringFunc(text, func(match string) string {
		found = true
		return redactedPlaceholder
	})
	redacted = emailPattern.ReplaceAllStringFunc(redacted, func(match string) string {
		found = true
		return redactedPlaceholder
	})

	return redacted, found
}
