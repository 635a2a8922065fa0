package timezones

import (
	"sort"
	"strings"
)

// Option is a value/label pair suitable for select inputs.
type Option struct {
	Value  string  `json:"value"`
	Label  string  `json:"label"`
	Offset float64 `json:"offset"`
}

// Search matches query case-insensitively against location and display name.
// Location prefix matches sort first, the rest by location.
func Search(records []Record, query string, limit int, opts Options) []Record {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(records) <= limit {
				return append([]Record{}, records...)
			}
			return append([]Record{}, records[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedRecord, 0, 32)
	for _, rec := range records {
		lowerLoc := strings.ToLower(rec.Location)
		if !strings.Contains(lowerLoc, q) && !strings.Contains(strings.ToLower(rec.Name), q) {
			continue
		}
		matches = append(matches, matchedRecord{
			record:   rec,
			isPrefix: strings.HasPrefix(lowerLoc, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].record.Location < matches[j].record.Location
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Record, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.record)
	}
	return out
}

func SearchOptions(records []Record, query string, limit int, opts Options) []Option {
	results := Search(records, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, rec := range results {
		out = append(out, Option{
			Value:  rec.Location,
			Label:  rec.Label(),
			Offset: rec.DecimalOffset.Float64(),
		})
	}
	return out
}

type matchedRecord struct {
	record   Record
	isPrefix bool
}
