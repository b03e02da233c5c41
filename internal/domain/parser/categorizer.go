package parser

import (
	"strings"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// CategoryRule assigns Category when the merchant contains any keyword
type CategoryRule struct {
	Category entity.Category
	Keywords []string
}

// categoryRules are evaluated in order; keywords are upper case
var categoryRules = []CategoryRule{
	{Category: entity.CategoryFood, Keywords: []string{"SWIGGY", "ZOMATO", "MC DONALES", "CANTEEN", "FOOD"}},
	{Category: entity.CategoryTransport, Keywords: []string{"UBER", "OLA", "PETROL", "FUEL"}},
	{Category: entity.CategoryShopping, Keywords: []string{"AMAZON", "FLIPKART", "MYNTRA", "SHOP"}},
	{Category: entity.CategoryEntertainment, Keywords: []string{"NETFLIX", "SPOTIFY", "MOVIE"}},
	{Category: entity.CategoryTransfer, Keywords: []string{"UPI"}},
}

// CategoryRules returns a copy of the ordered rule table
func CategoryRules() []CategoryRule {
	rules := make([]CategoryRule, len(categoryRules))
	copy(rules, categoryRules)
	return rules
}

// Categorize maps merchant text to a category, falling back to Others
func Categorize(merchant string) entity.Category {
	upper := strings.ToUpper(merchant)
	for _, rule := range categoryRules {
		if containsAny(upper, rule.Keywords) {
			return rule.Category
		}
	}
	return entity.CategoryOthers
}
