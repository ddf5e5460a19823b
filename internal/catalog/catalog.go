package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is one dialling code with the place it serves and its position.
// Code is digits only with a leading "0" and uniquely identifies the entry.
type Entry struct {
	Code  string
	Place string
	Lat   float64
	Lon   float64
}

// Column headers expected in the source CSV.
const (
	colCode = "Phone Code"
	colArea = "Area"
	colLat  = "Latitude"
	colLon  = "Longitude"
)

// ErrNoEntries is returned when a dataset yields no usable rows.
var ErrNoEntries = errors.New("no usable entries in dataset")

// Load parses a CSV dataset into a deduplicated, sorted entry list.
// Rows missing the code, place, or coordinates are dropped rather than
// failing the whole load. Duplicate codes collapse to the first occurrence.
// The result is sorted by place name using English collation.
func Load(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colCode, colArea, colLat, colLon} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", required)
		}
	}

	seen := map[string]bool{}
	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged or quoted-badly rows are dropped, not fatal.
			continue
		}

		e, ok := parseRow(rec, idx)
		if !ok || seen[e.Code] {
			continue
		}
		seen[e.Code] = true
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	c := collate.New(language.English, collate.IgnoreCase)
	sort.Slice(entries, func(i, j int) bool {
		return c.CompareString(entries[i].Place, entries[j].Place) < 0
	})

	return entries, nil
}

func parseRow(rec []string, idx map[string]int) (Entry, bool) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	code := NormalizeCode(field(colCode))
	place := field(colArea)
	if code == "" || place == "" {
		return Entry{}, false
	}

	lat, err := strconv.ParseFloat(field(colLat), 64)
	if err != nil {
		return Entry{}, false
	}
	lon, err := strconv.ParseFloat(field(colLon), 64)
	if err != nil {
		return Entry{}, false
	}

	return Entry{Code: code, Place: place, Lat: lat, Lon: lon}, true
}

// NormalizeCode reduces a raw code field to its digits and guarantees a
// leading "0". Returns "" if the field contains no digits.
func NormalizeCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}
	return digits
}

// Find returns the entry with the given code, if present.
func Find(entries []Entry, code string) (Entry, bool) {
	for _, e := range entries {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}
