package engine

import (
	"regexp"
)

// merchantPattern maps a description regex to a category with an empirical
// match probability.
type merchantPattern struct {
	re          *regexp.Regexp
	category    string
	probability float64
}

// HeuristicClassifier is the local statistical fast path: a prioritized
// pattern table over transaction descriptions. No network, no state,
// millisecond-scale.
type HeuristicClassifier struct {
	patterns []merchantPattern
}

// NewHeuristicClassifier builds the default pattern table. Patterns are
// evaluated in order; the first match wins.
func NewHeuristicClassifier() *HeuristicClassifier {
	compile := func(expr string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)` + expr)
	}
	return &HeuristicClassifier{patterns: []merchantPattern{
		{compile(`\b(DIRECTDEP|DIRECT\s*DEP|PAYROLL|SALARY|WAGES)\b`), "Salary", 0.95},
		{compile(`\b(INTEREST|INT\s*EARNED|DIVIDEND)\b`), "Interest Income", 0.90},
		{compile(`\b(REFUND|REIMB|REIMBURSEMENT|CASHBACK|CASH\s*BACK)\b`), "Refunds", 0.85},
		{compile(`\b(TRANSFER|XFER|ZELLE|VENMO|ACH\s*(CREDIT|DEBIT))\b`), "Transfers", 0.85},
		{compile(`\b(SAFEWAY|KROGER|WHOLE\s*FOODS|TRADER\s*JOE|ALDI|COSTCO|GROCERY)\b`), "Groceries", 0.92},
		{compile(`\b(STARBUCKS|DUNKIN|CAFE|COFFEE|RESTAURANT|DOORDASH|GRUBHUB|UBER\s*EATS)\b`), "Coffee & Dining", 0.90},
		{compile(`\b(SHELL|CHEVRON|EXXON|UBER|LYFT|TRANSIT|METRO|PARKING|FUEL)\b`), "Transportation", 0.88},
		{compile(`\b(RENT|MORTGAGE|HOA\s*DUES|PROPERTY\s*MGMT)\b`), "Housing", 0.90},
		{compile(`\b(ELECTRIC|WATER|GAS\s*CO|COMCAST|XFINITY|VERIZON|T-?MOBILE|AT&T|INTERNET)\b`), "Utilities", 0.88},
		{compile(`\b(PHARMACY|CVS|WALGREENS|CLINIC|DENTAL|MEDICAL|HOSPITAL)\b`), "Healthcare", 0.88},
		{compile(`\b(NETFLIX|SPOTIFY|HULU|DISNEY|HBO|CINEMA|THEATER|STEAM)\b`), "Entertainment", 0.88},
		{compile(`\b(AMAZON|TARGET|WALMART|BEST\s*BUY|EBAY|ETSY)\b`), "Shopping", 0.85},
		{compile(`\b(AIRLINE|DELTA|UNITED|SOUTHWEST|HOTEL|MARRIOTT|HILTON|AIRBNB)\b`), "Travel", 0.88},
		{compile(`\b(SUBSCRIPTION|RECURRING|MEMBERSHIP)\b`), "Subscriptions", 0.75},
		{compile(`\b(GEICO|ALLSTATE|PROGRESSIVE|STATE\s*FARM|INSURANCE|PREMIUM)\b`), "Insurance", 0.88},
	}}
}

// Classify returns the first matching category and its probability. Unmatched
// descriptions fall through to Other with low probability, which the
// confidence policy will reject toward the smart path.
func (c *HeuristicClassifier) Classify(text string) (string, float64) {
	for _, p := range c.patterns {
		if p.re.MatchString(text) {
			return p.category, p.probability
		}
	}
	return "Other", 0.2
}
