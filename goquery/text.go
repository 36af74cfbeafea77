// Package goquery flattens whole HTML pages to plain text using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/furnex"
	"golang.org/x/text/unicode/norm"
)

// Ensure Converter implements furnex.TextConverter at compile time.
var _ furnex.TextConverter = (*Converter)(nil)

// noise lists elements whose text never describes products.
const noise = "script, style, meta, noscript, head"

// Converter returns all visible text of a page, navigation and footers
// included. Product names often sit in menus and cards that main-content
// extractors drop.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Text returns the page text with whitespace collapsed between chunks.
func (c *Converter) Text(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", furnex.Errorf(furnex.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", furnex.Errorf(furnex.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(noise).Remove()

	return Collapse(doc.Text()), nil
}

// Collapse trims every line of text, splits lines on runs of two spaces,
// and joins the non-empty chunks with single spaces. The result is NFC
// normalized so composed and decomposed Cyrillic compare equal.
func Collapse(text string) string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return norm.NFC.String(strings.Join(chunks, " "))
}
