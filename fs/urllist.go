package fs

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/furnex"
)

// URLColumn is the CSV column holding page URLs.
const URLColumn = "max(page)"

// Ensure URLList implements furnex.URLSource at compile time.
var _ furnex.URLSource = (*URLList)(nil)

// URLList reads page URLs from the URLColumn of a CSV file.
type URLList struct {
	path string
}

// NewURLList creates a URLList backed by the CSV file at path.
func NewURLList(path string) *URLList {
	return &URLList{path: path}
}

// LoadURLs returns the non-empty URLs of the file in row order.
// Returns ENOTFOUND if the file is missing and EINVALID if it has no
// URLColumn.
func (l *URLList) LoadURLs(ctx context.Context) ([]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, furnex.Errorf(furnex.ENOTFOUND, "URL list not found at %s", l.path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, furnex.Errorf(furnex.EINVALID, "URL list %s is empty", l.path)
	}
	if err != nil {
		return nil, furnex.Errorf(furnex.EINVALID, "reading URL list %s: %v", l.path, err)
	}

	col := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == URLColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, furnex.Errorf(furnex.EINVALID, "URL list %s has no %q column", l.path, URLColumn)
	}

	urls := []string{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, furnex.Errorf(furnex.EINVALID, "reading URL list %s: %v", l.path, err)
		}
		if col >= len(record) {
			continue
		}
		if u := strings.TrimSpace(record[col]); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
