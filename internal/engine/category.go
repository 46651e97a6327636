package engine

import "strings"

// Category is the closed set of spending categories the engine understands.
type Category string

const (
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryInsurance     Category = "insurance"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryEducation     Category = "education"
	CategoryDebt          Category = "debt"
	CategorySubscriptions Category = "subscriptions"
	CategorySavings       Category = "savings"
	CategoryOther         Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryHousing, CategoryUtilities, CategoryFood, CategoryTransport,
	CategoryHealth, CategoryInsurance, CategoryEntertainment, CategoryShopping,
	CategoryEducation, CategoryDebt, CategorySubscriptions, CategorySavings,
	CategoryOther,
}

var categoryAliases = map[string]Category{
	"rent":           CategoryHousing,
	"mortgage":       CategoryHousing,
	"home":           CategoryHousing,
	"electricity":    CategoryUtilities,
	"water":          CategoryUtilities,
	"internet":       CategoryUtilities,
	"phone":          CategoryUtilities,
	"groceries":      CategoryFood,
	"grocery":        CategoryFood,
	"dining":         CategoryFood,
	"restaurant":     CategoryFood,
	"restaurants":    CategoryFood,
	"food & drink":   CategoryFood,
	"fuel":           CategoryTransport,
	"gas":            CategoryTransport,
	"transit":        CategoryTransport,
	"taxi":           CategoryTransport,
	"transportation": CategoryTransport,
	"medical":        CategoryHealth,
	"pharmacy":       CategoryHealth,
	"healthcare":     CategoryHealth,
	"fun":            CategoryEntertainment,
	"movies":         CategoryEntertainment,
	"travel":         CategoryEntertainment,
	"clothing":       CategoryShopping,
	"clothes":        CategoryShopping,
	"tuition":        CategoryEducation,
	"loan":           CategoryDebt,
	"credit card":    CategoryDebt,
	"subscription":   CategorySubscriptions,
	"streaming":      CategorySubscriptions,
	"investment":     CategorySavings,
}

// essential categories are excluded from discretionary spend.
var essential = map[Category]bool{
	CategoryHousing:   true,
	CategoryUtilities: true,
	CategoryHealth:    true,
	CategoryInsurance: true,
	CategoryDebt:      true,
}

// NormalizeCategory maps a free-form category string onto the closed set.
// Unknown values map to CategoryOther so the pipeline never fails on them.
func NormalizeCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return CategoryOther
	}
	for _, c := range Categories {
		if string(c) == key {
			return c
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c
	}
	return CategoryOther
}

// IsDiscretionary reports whether spend in c could be cut without missing an obligation.
func (c Category) IsDiscretionary() bool {
	return !essential[c]
}
