package timezones

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadTable_IndexesOffsets(t *testing.T) {
	doc := `[
  {"location": "America/New_York", "gmt_t": "GMT-05:00", "t_name": "Eastern Time", "decimal_offset": -5.0},
  {"location": "Asia/Kolkata", "gmt_t": "GMT+05:30", "t_name": "India", "decimal_offset": 5.5},
  {"location": "Asia/Kolkata", "decimal_offset": 5.75}
]`

	table, err := LoadTable(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 locations, got %d", table.Len())
	}
	if v, ok := table.Offset("America/New_York"); !ok || v != -5 {
		t.Fatalf("unexpected New York offset: %v %v", v, ok)
	}
	if v, ok := table.Offset("Asia/Kolkata"); !ok || v != 5.75 {
		t.Fatalf("expected last duplicate to win, got %v %v", v, ok)
	}
	if _, ok := table.Offset("Europe/Nowhere"); ok {
		t.Fatalf("expected unknown location to be absent")
	}
	if diff := cmp.Diff([]string{"America/New_York", "Asia/Kolkata"}, table.Locations()); diff != "" {
		t.Fatalf("locations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTable_RejectsMalformedDocuments(t *testing.T) {
	tests := map[string]string{
		"not an array":       `{"location": "UTC"}`,
		"entry not object":   `["UTC"]`,
		"location not str":   `[{"location": 5, "decimal_offset": 0}]`,
		"offset not number":  `[{"location": "UTC", "decimal_offset": "0"}]`,
		"offset missing":     `[{"location": "UTC"}]`,
		"invalid json input": `[`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadTable(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error for %s", doc)
			}
		})
	}
}

func TestTable_FixedZone(t *testing.T) {
	table := NewTable([]Record{
		{Location: "Asia/Kathmandu", DecimalOffset: 5.75},
		{Location: "America/St_Johns", DecimalOffset: -3.5},
	})

	loc, ok := table.FixedZone("Asia/Kathmandu")
	if !ok {
		t.Fatalf("expected zone")
	}
	ref := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if name, offset := ref.In(loc).Zone(); name != "Asia/Kathmandu" || offset != 5*3600+45*60 {
		t.Fatalf("unexpected zone %q offset %d", name, offset)
	}

	loc, _ = table.FixedZone("America/St_Johns")
	if _, offset := ref.In(loc).Zone(); offset != -(3*3600 + 30*60) {
		t.Fatalf("unexpected offset %d", offset)
	}

	if _, ok := table.FixedZone("UTC"); ok {
		t.Fatalf("expected missing zone")
	}
}

func TestDefaultTable_ContainsBundledLocations(t *testing.T) {
	table, err := DefaultTable()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for location, want := range map[string]float64{
		"America/New_York":  -5,
		"Pacific/Marquesas": -9.5,
		"Asia/Kathmandu":    5.75,
		"Europe/London":     0,
	} {
		got, ok := table.Offset(location)
		if !ok {
			t.Fatalf("expected %s to be present", location)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", location, want, got)
		}
	}
}
