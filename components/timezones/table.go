package timezones

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Table maps location identifiers to their decimal offsets.
type Table struct {
	offsets map[string]float64
}

// NewTable indexes records by location. Later duplicates replace earlier ones.
func NewTable(records []Record) *Table {
	t := &Table{offsets: make(map[string]float64, len(records))}
	for _, rec := range records {
		t.offsets[rec.Location] = rec.DecimalOffset.Float64()
	}
	return t
}

// LoadTable reads a converted timezones document. Unlike Decode it only
// requires the location and decimal_offset keys, and reports which entry is
// malformed.
func LoadTable(r io.Reader) (*Table, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("timezones: decode table: %w", err)
	}
	entries, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("timezones: table document is not an array")
	}

	t := &Table{offsets: make(map[string]float64, len(entries))}
	for i, raw := range entries {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("timezones: table entry %d is not an object", i)
		}
		location, ok := obj[FieldLocation].(string)
		if !ok {
			return nil, fmt.Errorf("timezones: table entry %d: location is not a string", i)
		}
		offset, ok := obj["decimal_offset"].(float64)
		if !ok {
			return nil, fmt.Errorf("timezones: table entry %d: decimal_offset is not a number", i)
		}
		t.offsets[location] = offset
	}
	return t, nil
}

// Offset returns the decimal offset for location.
func (t *Table) Offset(location string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.offsets[location]
	return v, ok
}

// FixedZone returns a fixed-offset time.Location named after location.
func (t *Table) FixedZone(location string) (*time.Location, bool) {
	v, ok := t.Offset(location)
	if !ok {
		return nil, false
	}
	return time.FixedZone(location, Offset(v).Seconds()), true
}

// Locations returns every indexed location, sorted.
func (t *Table) Locations() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.offsets))
	for loc := range t.offsets {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.offsets)
}
