package furnex

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extraction tuning.
const (
	// MaxCandidates is the number of candidates kept per page.
	MaxCandidates = 20

	// WindowRadius is the number of words taken on each side of a keyword.
	WindowRadius = 3

	// MaxTokenLength is the rune length at which a token is treated as
	// markup garbage and dropped by Clean.
	MaxTokenLength = 30

	// MinNameLength is the rune length a cleaned name must exceed.
	MinNameLength = 3
)

// Confidence scoring.
const (
	BaseConfidence  = 0.6
	QuoteBonus      = 0.2
	LengthBonus     = 0.1
	MaxConfidence   = 0.95
	LengthBonusFrom = 3 // tokens
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Extractor finds furniture product candidates in plain page text.
// Extractor holds only its keyword configuration and is safe for
// concurrent use.
type Extractor struct {
	keywords KeywordSet
}

// NewExtractor returns an Extractor that anchors windows on keywords.
func NewExtractor(keywords KeywordSet) *Extractor {
	return &Extractor{keywords: keywords}
}

// Keywords returns the configured keyword set.
func (e *Extractor) Keywords() KeywordSet {
	return e.keywords
}

// Extract returns up to MaxCandidates candidates found in text, ranked by
// confidence. It never fails; text without keywords yields nil.
func (e *Extractor) Extract(text string) []Candidate {
	var found []Candidate
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		found = append(found, e.scanSentence(sentence)...)
	}

	result := Dedupe(found)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})
	if len(result) > MaxCandidates {
		result = result[:MaxCandidates]
	}
	return result
}

// scanSentence emits one candidate per keyword-bearing word in sentence.
// Overlapping windows are kept as separate candidates.
func (e *Extractor) scanSentence(sentence string) []Candidate {
	lower := strings.ToLower(sentence)

	var words []string
	var found []Candidate
	for _, keyword := range e.keywords.terms {
		if !strings.Contains(lower, keyword) {
			continue
		}
		if words == nil {
			words = splitWords(sentence)
		}
		for i, word := range words {
			if !strings.Contains(strings.ToLower(word), keyword) {
				continue
			}
			start := max(0, i-WindowRadius)
			end := min(len(words), i+WindowRadius+1)

			name := Clean(strings.Join(words[start:end], " "))
			if utf8.RuneCountInString(name) <= MinNameLength {
				continue
			}
			found = append(found, Candidate{Name: name, Confidence: Score(name)})
		}
	}
	return found
}

// Score returns the confidence for a cleaned candidate name.
// Quoted names and names of three or more words score higher.
func Score(name string) float64 {
	confidence := BaseConfidence
	if strings.ContainsAny(name, `"'`) {
		confidence += QuoteBonus
	}
	if len(splitWords(name)) >= LengthBonusFrom {
		confidence += LengthBonus
	}
	return min(confidence, MaxConfidence)
}

// Dedupe collapses candidates sharing a lowercased name, keeping the one
// with the highest confidence. The earliest candidate wins ties, and the
// result keeps first-occurrence order. Dedupe is idempotent.
func Dedupe(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	index := make(map[string]int, len(candidates))
	result := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c.Name)
		if i, ok := index[key]; ok {
			if result[i].Confidence < c.Confidence {
				result[i] = c
			}
			continue
		}
		index[key] = len(result)
		result = append(result, c)
	}
	return result
}

// Clean turns a raw word window into a candidate name. Punctuation other
// than hyphens, quotes, commas, periods and guillemets becomes whitespace,
// whitespace is collapsed, and overlong tokens are dropped.
func Clean(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, raw)

	fields := splitWords(mapped)
	kept := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MaxTokenLength {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// splitWords splits s around runs of whitespace. The ASCII information
// separators U+001C..U+001F count as whitespace too.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func keepRune(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return true
	}
	switch r {
	case '_', '-', '\'', '"', ',', '.', '«', '»':
		return true
	}
	return false
}
