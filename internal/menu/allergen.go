package menu

import "strings"

type allergenRule struct {
	tag      string
	keywords []string
}

// Keyword-based detection over free-form ingredients text. It is a
// hint for the UI, not a safety guarantee.
var allergenRules = []allergenRule{
	{"Egg", []string{"egg"}},
	{"Milk/Dairy", []string{"milk", "cheese", "butter", "cream"}},
	{"Gluten/Wheat", []string{"wheat", "gluten", "flour"}},
	{"Soy", []string{"soy"}},
	{"Tree Nuts", []string{"almond", "walnut", "pecan", "cashew", "hazelnut", "pistachio"}},
	{"Peanuts", []string{"peanut"}},
	{"Fish", []string{"fish", "salmon", "tuna", "cod"}},
	{"Shellfish", []string{"shrimp", "crab", "lobster", "shellfish"}},
	{"Sesame", []string{"sesame"}},
}

// AllergenTags returns the allergen tags detected in the
// ingredients text, in rule order.
func AllergenTags(ingredients string) []string {
	if ingredients == "" {
		return nil
	}
	text := strings.ToLower(ingredients)

	var tags []string
	for _, rule := range allergenRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}
