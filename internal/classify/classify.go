// Package classify maps free-text disease cause names onto the five
// high-level burden categories.
//
// Exact matching against the known level-2 taxonomy names runs first and is
// authoritative. The substring fallback that follows keeps the long tail of
// specific cause labels out of Unclassified at the cost of occasional
// misclassification; that trade-off is accepted and the rule order below is
// load-bearing for reproducibility, so do not reorder it.
package classify

import (
	"strings"

	"github.com/healthforge/gbdkit/internal/model"
)

// Exact (case-insensitive) level-2 cause names per category.
var (
	maternalNeonatal = exactSet(
		"maternal disorders",
		"neonatal disorders",
	)

	communicable = exactSet(
		"enteric infections",
		"respiratory infections and tuberculosis",
		"hiv/aids and sexually transmitted infections",
		"neglected tropical diseases and malaria",
		"nutritional deficiencies",
		"other infectious diseases",
	)

	injuries = exactSet(
		"transport injuries",
		"unintentional injuries",
		"self-harm and interpersonal violence",
		"exposure to forces of nature",
	)

	ncds = exactSet(
		"cardiovascular diseases",
		"neoplasms",
		"chronic respiratory diseases",
		"digestive diseases",
		"diabetes and kidney diseases",
		"neurological disorders",
		"mental disorders",
		"substance use disorders",
		"musculoskeletal disorders",
		"skin and subcutaneous diseases",
		"sense organ diseases",
		"oral disorders",
		"other non-communicable diseases",
		"gynecological diseases",
	)
)

// exactGroups pairs each exact set with its category, in precedence order.
var exactGroups = []struct {
	names    map[string]bool
	category model.Category
}{
	{maternalNeonatal, model.CategoryMaternalNeonatal},
	{communicable, model.CategoryCommunicable},
	{injuries, model.CategoryInjuries},
	{ncds, model.CategoryNCD},
}

// rule is one substring heuristic in the ordered fallback chain.
type rule struct {
	keywords []string
	category model.Category
}

// rules are evaluated in sequence; the first rule with any matching keyword
// wins. A name containing keywords from two groups (e.g. both "maternal" and
// "infection") resolves to the earlier rule.
var rules = []rule{
	{
		keywords: []string{"maternal", "neonatal", "birth asphyxia", "preterm"},
		category: model.CategoryMaternalNeonatal,
	},
	{
		keywords: []string{
			"tuberculosis", "malaria", "hiv", "aids", "infection",
			"diarrheal", "diarrhoea", "measles", "meningitis",
		},
		category: model.CategoryCommunicable,
	},
	{
		keywords: []string{"injury", "violence", "road", "transport", "fire"},
		category: model.CategoryInjuries,
	},
}

// Classify maps a cause name to its category. Pure, total and deterministic:
// blank input yields Unclassified and anything unmatched defaults to
// Non-communicable diseases.
func Classify(cause string) model.Category {
	trimmed := strings.TrimSpace(cause)
	if trimmed == "" {
		return model.CategoryUnclassified
	}
	lower := strings.ToLower(trimmed)

	for _, g := range exactGroups {
		if g.names[lower] {
			return g.category
		}
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}

	return model.CategoryNCD
}

func exactSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
