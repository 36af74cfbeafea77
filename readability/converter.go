// Package readability reduces product pages to their article text using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/furnex"
	"github.com/go-shiori/go-readability"
)

// Ensure Converter implements furnex.TextConverter at compile time.
var _ furnex.TextConverter = (*Converter)(nil)

// Converter returns the readable article text of a page.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Text returns the article title and text on one line.
func (c *Converter) Text(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", furnex.Errorf(furnex.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", furnex.Errorf(furnex.EINVALID, "no readable content: %v", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if title := strings.Join(strings.Fields(article.Title), " "); title != "" && !strings.HasPrefix(text, title) {
		text = title + ". " + text
	}
	return text, nil
}
