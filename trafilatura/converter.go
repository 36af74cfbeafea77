// Package trafilatura reduces product pages to their main content using
// go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/furnex"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Converter implements furnex.TextConverter at compile time.
var _ furnex.TextConverter = (*Converter)(nil)

// Converter returns the page title and main content text, with navigation,
// footers and comments removed.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Text returns the title and main content as one line of text. The title
// ends its own sentence so extraction windows do not run across it.
func (c *Converter) Text(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", furnex.Errorf(furnex.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	})
	if err != nil {
		return "", furnex.Errorf(furnex.EINVALID, "no main content: %v", err)
	}

	body := strings.Join(strings.Fields(result.ContentText), " ")
	title := strings.Join(strings.Fields(result.Metadata.Title), " ")
	if title == "" || strings.HasPrefix(body, title) {
		return body, nil
	}
	return title + ". " + body, nil
}
