package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/furnex"
)

// SummaryFile is the name of the evaluation summary written next to the
// test set.
const SummaryFile = "evaluation_results.json"

// Ensure TestSetStore implements furnex.TestSetStore at compile time.
var _ furnex.TestSetStore = (*TestSetStore)(nil)

// TestSetStore keeps the test set as a JSON array of
// {"url", "products", "confidence"} objects.
type TestSetStore struct {
	path string
}

// NewTestSetStore creates a TestSetStore backed by the file at path.
func NewTestSetStore(path string) *TestSetStore {
	return &TestSetStore{path: path}
}

// Path returns the test set file path.
func (s *TestSetStore) Path() string {
	return s.path
}

// SummaryPath returns the evaluation summary file path.
func (s *TestSetStore) SummaryPath() string {
	return filepath.Join(filepath.Dir(s.path), SummaryFile)
}

// LoadTestSet reads the test set.
func (s *TestSetStore) LoadTestSet() ([]furnex.TestCase, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, furnex.Errorf(furnex.ENOTFOUND, "test set not found at %s", s.path)
	}
	if err != nil {
		return nil, err
	}

	var cases []furnex.TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, furnex.Errorf(furnex.EINVALID, "test set %s is not valid JSON: %v", s.path, err)
	}
	for i := range cases {
		if err := cases[i].Validate(); err != nil {
			return nil, furnex.Errorf(furnex.EINVALID, "test case %d: %s", i, furnex.ErrorMessage(err))
		}
	}
	return cases, nil
}

// SaveTestSet replaces the test set file.
func (s *TestSetStore) SaveTestSet(cases []furnex.TestCase) error {
	if cases == nil {
		cases = []furnex.TestCase{}
	}
	return writeJSON(s.path, cases)
}

// SaveSummary writes m to SummaryPath.
func (s *TestSetStore) SaveSummary(m *furnex.Metrics) error {
	return writeJSON(s.SummaryPath(), m)
}
