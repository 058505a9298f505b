package recipe

import (
	"sort"
	"strings"

	"Go-Recipe-Chat/entities"
)

// normalizeTerms lowercases and trims the search terms and drops blanks.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// matchesAnyIngredient reports whether any ingredient of r contains any of
// the normalized terms. Plain substring match, so "pea" also hits "peanut".
func matchesAnyIngredient(r entities.Recipe, terms []string) bool {
	for _, ing := range r.Ingredients {
		ing = strings.ToLower(ing)
		for _, t := range terms {
			if strings.Contains(ing, t) {
				return true
			}
		}
	}
	return false
}

func filterByIngredients(recipes []entities.Recipe, terms []string) []entities.Recipe {
	terms = normalizeTerms(terms)
	out := make([]entities.Recipe, 0)
	if len(terms) == 0 {
		return out
	}
	for _, r := range recipes {
		if matchesAnyIngredient(r, terms) {
			out = append(out, r)
		}
	}
	return out
}

func matchesText(r entities.Recipe, q string) bool {
	fields := append([]string{r.Title, r.Description, r.Cuisine, r.Category}, r.Ingredients...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func filterByText(recipes []entities.Recipe, q string) []entities.Recipe {
	out := make([]entities.Recipe, 0)
	for _, r := range recipes {
		if matchesText(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func filterByField(recipes []entities.Recipe, value string, field func(entities.Recipe) string) []entities.Recipe {
	value = strings.TrimSpace(value)
	out := make([]entities.Recipe, 0)
	for _, r := range recipes {
		if strings.EqualFold(field(r), value) {
			out = append(out, r)
		}
	}
	return out
}

// topRated sorts by rating, highest first with lower ids winning ties, and
// keeps at most limit recipes.
func topRated(recipes []entities.Recipe, limit int) []entities.Recipe {
	sorted := make([]entities.Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
