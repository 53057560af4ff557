package importer

import (
	"strings"

	"github.com/dealdesk/dealdesk/internal/entities"
)

// categoryRules is the ordered best-effort classifier for destination
// categories. Text keywords match as case-insensitive substrings of the
// template name or folder hint; type hints match the source vocabulary
// exactly. First rule that matches wins, so text evidence outranks the
// declared type hint.
var categoryRules = []struct {
	category  entities.TemplateCategory
	keywords  []string
	typeHints []string
}{
	{category: entities.CategoryListing, keywords: []string{"listing", "seller"}},
	{category: entities.CategoryBuyer, keywords: []string{"buyer", "purchase"}},
	{category: entities.CategoryBuyer, typeHints: []string{"BUYER"}},
	{category: entities.CategoryListing, typeHints: []string{"SELLER", "LISTING"}},
}

// InferCategory classifies a source template into a destination category.
func InferCategory(name, folderHint, typeHint string) entities.TemplateCategory {
	text := strings.ToLower(name + " " + folderHint)
	hint := strings.ToUpper(strings.TrimSpace(typeHint))

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
		for _, th := range rule.typeHints {
			if hint == th {
				return rule.category
			}
		}
	}

	return entities.CategoryGeneral
}
