package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
)

// Bundled UK area code dataset. Codes and places follow the Ofcom
// geographic numbering plan; coordinates are town centres.
//
//go:embed data/uk_area_codes.csv
var bundled []byte

// Default loads the bundled dataset.
func Default() ([]Entry, error) {
	entries, err := Load(bytes.NewReader(bundled))
	if err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	return entries, nil
}

// FromFile loads a dataset from a CSV file on disk, falling back to the
// bundled data when path is empty.
func FromFile(path string) ([]Entry, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	entries, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return entries, nil
}
