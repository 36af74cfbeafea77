package furnex

import "strings"

// DefaultKeywords are the furniture terms recognised out of the box,
// Russian first, then English.
var DefaultKeywords = []string{
	// Russian
	"диван", "кресло", "стол", "стул", "шкаф", "кровать", "комод", "тумба",
	"полка", "матрас", "гарнитур", "мебель", "светильник", "лампа",
	// English
	"sofa", "chair", "table", "desk", "wardrobe", "bed", "dresser", "cabinet",
	"shelf", "mattress", "furniture", "lamp", "couch", "nightstand", "bookcase",
}

// KeywordSet is an ordered set of lowercase furniture terms.
// A KeywordSet is immutable once built and safe for concurrent use.
type KeywordSet struct {
	terms []string
}

// NewKeywordSet builds a KeywordSet from terms, preserving order.
// Terms are lowercased and trimmed; empty and repeated terms are dropped.
func NewKeywordSet(terms []string) KeywordSet {
	seen := make(map[string]struct{}, len(terms))
	set := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		set = append(set, term)
	}
	return KeywordSet{terms: set}
}

// Terms returns a copy of the terms in configured order.
func (k KeywordSet) Terms() []string {
	return append([]string(nil), k.terms...)
}

// Len returns the number of terms.
func (k KeywordSet) Len() int {
	return len(k.terms)
}

// Matches reports whether s contains any term as a case-insensitive substring.
func (k KeywordSet) Matches(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range k.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
