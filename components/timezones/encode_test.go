package timezones

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshal_IndentedWithFractionalOffsets(t *testing.T) {
	records := []Record{
		{Location: "America/New_York", GMT: "GMT-05:00", Name: "Eastern Time", DecimalOffset: -5},
		{Location: "Asia/Kolkata", GMT: "GMT+05:30", Name: "India <IST>", DecimalOffset: 5.5},
	}

	got, err := Marshal(records, DefaultIndent)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := `[
  {
    "location": "America/New_York",
    "gmt_t": "GMT-05:00",
    "t_name": "Eastern Time",
    "decimal_offset": -5.0
  },
  {
    "location": "Asia/Kolkata",
    "gmt_t": "GMT+05:30",
    "t_name": "India <IST>",
    "decimal_offset": 5.5
  }
]
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_EmptyIsArray(t *testing.T) {
	got, err := Marshal(nil, DefaultIndent)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.TrimSpace(string(got)) != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestDecode_ReencodesByteIdentical(t *testing.T) {
	embedded, err := dataFS.ReadFile(defaultDataPath)
	if err != nil {
		t.Fatalf("read embedded data: %v", err)
	}

	records, err := Decode(bytes.NewReader(embedded))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	again, err := Marshal(records, DefaultIndent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if diff := cmp.Diff(string(embedded), string(again)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"location":"UTC","zone":"x"}]`))
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestOffset_JSON(t *testing.T) {
	tests := map[Offset]string{
		-5:    "-5.0",
		0:     "0.0",
		5.75:  "5.75",
		-9.5:  "-9.5",
		12.75: "12.75",
	}
	for in, want := range tests {
		got, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("%v: %v", in, err)
		}
		if string(got) != want {
			t.Fatalf("%v: expected %s, got %s", in, want, got)
		}

		var back Offset
		if err := json.Unmarshal(got, &back); err != nil {
			t.Fatalf("%s: %v", got, err)
		}
		if back != in {
			t.Fatalf("%s: expected %v back, got %v", got, in, back)
		}
	}

	var o Offset
	if err := json.Unmarshal([]byte(`"5.5"`), &o); err == nil {
		t.Fatalf("expected error for string offset")
	}
	if err := json.Unmarshal([]byte(`null`), &o); err == nil {
		t.Fatalf("expected error for null offset")
	}
}

func TestDecode_RequiresEveryKey(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want string
	}{
		"null offset": {
			doc:  `[{"location":"UTC","gmt_t":"GMT+00:00","t_name":"UTC","decimal_offset":null}]`,
			want: "entry 0: missing decimal_offset",
		},
		"missing offset": {
			doc:  `[{"location":"UTC","gmt_t":"GMT+00:00","t_name":"UTC"}]`,
			want: "entry 0: missing decimal_offset",
		},
		"missing name and location": {
			doc: `[{"location":"UTC","gmt_t":"GMT+00:00","t_name":"UTC","decimal_offset":0.0},` +
				`{"gmt_t":"GMT+01:00","decimal_offset":1.0}]`,
			want: "entry 1: missing location, t_name",
		},
		"null document": {
			doc:  `null`,
			want: "not an array",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
		})
	}

	got, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("expected empty array to decode, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestDecode_AgreesWithLoadTableOnNullOffset(t *testing.T) {
	doc := `[{"location":"UTC","gmt_t":"GMT+00:00","t_name":"UTC","decimal_offset":null}]`

	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected Decode to reject a null offset")
	}
	if _, err := LoadTable(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected LoadTable to reject a null offset")
	}
}

func TestMarshal_WritesUTF8Unescaped(t *testing.T) {
	got, err := Marshal([]Record{
		{Location: "America/Sao_Paulo", GMT: "GMT-03:00", Name: "Brasília", DecimalOffset: -3},
	}, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := `[{"location":"America/Sao_Paulo","gmt_t":"GMT-03:00","t_name":"Brasília","decimal_offset":-3.0}]` + "\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
