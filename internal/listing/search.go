package listing

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// FeaturedLimit is how many cars the home page shows before a search.
	FeaturedLimit = 4
	// SuggestionLimit caps the auto-suggest dropdown.
	SuggestionLimit = 5
	// MinSuggestLength is the shortest input that produces suggestions.
	MinSuggestLength = 2
)

// Visible drops cars that have no usable cover image. Order is preserved.
func Visible(cars []Car) []Car {
	out := make([]Car, 0, len(cars))
	for i := range cars {
		if cars[i].IsVisible() {
			out = append(out, cars[i])
		}
	}
	return out
}

// FilterListings is the catalog view: every visible car when query is empty,
// otherwise the visible cars matching query. Dataset order is preserved.
// The query is used verbatim; a lone space is a real query.
func FilterListings(cars []Car, query string) []Car {
	visible := Visible(cars)
	if query == "" {
		return visible
	}
	needle := strings.ToLower(query)
	out := make([]Car, 0, len(visible))
	for i := range visible {
		if Matches(&visible[i], needle) {
			out = append(out, visible[i])
		}
	}
	return out
}

// Featured is the home page view. It differs from FilterListings only when
// the query is empty, where it truncates to FeaturedLimit.
func Featured(cars []Car, query string) []Car {
	result := FilterListings(cars, query)
	if query == "" && len(result) > FeaturedLimit {
		return result[:FeaturedLimit]
	}
	return result
}

// Matches reports whether any searchable field of c contains lowerQuery.
// lowerQuery must already be lower-cased.
func Matches(c *Car, lowerQuery string) bool {
	fields := [...]string{
		c.Make,
		c.Model,
		c.Location,
		strconv.Itoa(c.Year),
		string(c.Condition),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

// Suggest returns up to SuggestionLimit distinct "{make} {model}" labels containing
// partial, in dataset order. Inputs shorter than MinSuggestLength yield nothing.
func Suggest(cars []Car, partial string) []string {
	if utf8.RuneCountInString(partial) < MinSuggestLength {
		return []string{}
	}
	needle := strings.ToLower(partial)
	seen := make(map[string]struct{}, len(cars))
	out := make([]string, 0, SuggestionLimit)
	for i := range cars {
		label := cars[i].Make + " " + cars[i].Model
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		if !strings.Contains(strings.ToLower(label), needle) {
			continue
		}
		out = append(out, label)
		if len(out) == SuggestionLimit {
			break
		}
	}
	return out
}
