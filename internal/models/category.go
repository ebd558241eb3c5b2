package models

type ExpenseCategory string

const (
	CategoryAccommodation ExpenseCategory = "accommodation"
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryActivities    ExpenseCategory = "activities"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryOther         ExpenseCategory = "other"
)

// ExpenseCategories is the closed set of spend categories, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryAccommodation,
	CategoryFood,
	CategoryTransport,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

var categoryIcons = map[ExpenseCategory]string{
	CategoryAccommodation: "🏨",
	CategoryFood:          "🍜",
	CategoryTransport:     "✈️",
	CategoryActivities:    "🎭",
	CategoryShopping:      "🛍️",
	CategoryOther:         "📦",
}

// Valid reports whether c belongs to the fixed category set.
func (c ExpenseCategory) Valid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Icon returns the display icon for the category, falling back to the
// "other" icon for unknown values.
func (c ExpenseCategory) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}
