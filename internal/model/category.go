package model

import "strings"

// CategoryType indicates whether a category is for income, expense, or system use.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeSystem represents system-managed categories (e.g., transfers).
	CategoryTypeSystem CategoryType = "system"
)

// Category represents a valid expense category. At most one category in a
// taxonomy should set Fallback; it becomes the catch-all answer when
// classification degrades.
type Category struct {
	Name        string
	Description string
	Type        CategoryType
	Fallback    bool
}

// Taxonomy is the closed set of categories a classification may use. Remote
// responses referencing categories outside the taxonomy are dropped by the
// validator rather than admitted.
type Taxonomy struct {
	byName     map[string]Category
	categories []Category
	fallback   string
}

// NewTaxonomy builds a taxonomy from the given categories. Name lookups are
// case-insensitive.
func NewTaxonomy(categories []Category) *Taxonomy {
	t := &Taxonomy{
		byName:     make(map[string]Category, len(categories)),
		categories: make([]Category, 0, len(categories)),
	}
	for _, cat := range categories {
		key := strings.ToLower(strings.TrimSpace(cat.Name))
		if _, exists := t.byName[key]; exists {
			continue
		}
		t.byName[key] = cat
		t.categories = append(t.categories, cat)
		if cat.Fallback && t.fallback == "" {
			t.fallback = cat.Name
		}
	}
	return t
}

// Fallback returns the taxonomy's catch-all category: the one marked
// Fallback, or the last member when none is marked. Taxonomies must not be
// empty.
func (t *Taxonomy) Fallback() Category {
	if t.fallback != "" {
		if cat, ok := t.Lookup(t.fallback); ok {
			return cat
		}
	}
	return t.categories[len(t.categories)-1]
}

// Contains reports whether name is a member of the taxonomy.
func (t *Taxonomy) Contains(name string) bool {
	_, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Lookup returns the canonical category for name.
func (t *Taxonomy) Lookup(name string) (Category, bool) {
	cat, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return cat, ok
}

// Categories returns the taxonomy members in insertion order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Names returns the category names in insertion order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, cat := range t.categories {
		names[i] = cat.Name
	}
	return names
}

// DefaultTaxonomy returns the built-in category set used when no custom
// taxonomy is configured.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy([]Category{
		{Name: "Groceries", Type: CategoryTypeExpense, Description: "Supermarkets and food stores"},
		{Name: "Coffee & Dining", Type: CategoryTypeExpense, Description: "Restaurants, cafes, and bars"},
		{Name: "Transportation", Type: CategoryTypeExpense, Description: "Fuel, transit, rideshare, and parking"},
		{Name: "Housing", Type: CategoryTypeExpense, Description: "Rent, mortgage, and home maintenance"},
		{Name: "Utilities", Type: CategoryTypeExpense, Description: "Power, water, internet, and phone"},
		{Name: "Healthcare", Type: CategoryTypeExpense, Description: "Medical, dental, and pharmacy"},
		{Name: "Entertainment", Type: CategoryTypeExpense, Description: "Streaming, events, and hobbies"},
		{Name: "Shopping", Type: CategoryTypeExpense, Description: "Retail and online purchases"},
		{Name: "Travel", Type: CategoryTypeExpense, Description: "Flights, hotels, and vacation spending"},
		{Name: "Subscriptions", Type: CategoryTypeExpense, Description: "Recurring digital services"},
		{Name: "Insurance", Type: CategoryTypeExpense, Description: "Policy premiums of any kind"},
		{Name: "Salary", Type: CategoryTypeIncome, Description: "Payroll and wages"},
		{Name: "Interest Income", Type: CategoryTypeIncome, Description: "Bank interest and dividends"},
		{Name: "Refunds", Type: CategoryTypeIncome, Description: "Returns, rebates, and reimbursements"},
		{Name: "Transfers", Type: CategoryTypeSystem, Description: "Movement between own accounts"},
		{Name: "Other", Type: CategoryTypeSystem, Description: "Anything that fits nowhere else", Fallback: true},
	})
}
