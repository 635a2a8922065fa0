package codegen

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tzformat/components/timezones"
	"github.com/goliatone/go-tzformat/pkg/testsupport"
)

func bundled(t *testing.T) []timezones.Record {
	t.Helper()
	records, err := timezones.DefaultRecords()
	if err != nil {
		t.Fatalf("load bundled records: %v", err)
	}
	return records
}

func TestGoSource_EmbedsDecodableJSON(t *testing.T) {
	records := bundled(t)

	src, err := GoSource(records, GoOptions{Package: "tzdata", Name: "Zones", Source: "timezones.json"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(string(src), "// Code generated by tzformat from timezones.json. DO NOT EDIT.\n") {
		t.Fatalf("unexpected header:\n%s", src)
	}

	file, err := parser.ParseFile(token.NewFileSet(), "zones.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	if file.Name.Name != "tzdata" {
		t.Fatalf("unexpected package %q", file.Name.Name)
	}

	var literal string
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok || len(spec.Names) != 1 || spec.Names[0].Name != "Zones" {
			return true
		}
		lit, ok := spec.Values[0].(*ast.BasicLit)
		if !ok {
			t.Fatalf("expected a string literal, got %T", spec.Values[0])
		}
		literal = lit.Value
		return false
	})
	if literal == "" {
		t.Fatalf("constant Zones not found in:\n%s", src)
	}

	doc, err := strconv.Unquote(literal)
	if err != nil {
		t.Fatalf("unquote: %v", err)
	}
	if strings.Contains(doc, "\n") {
		t.Fatalf("expected compact JSON")
	}
	decoded, err := timezones.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode embedded JSON: %v", err)
	}
	if diff := cmp.Diff(records, decoded); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestGoSource_Defaults(t *testing.T) {
	src, err := GoSource(nil, GoOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{
		"// Code generated by tzformat. DO NOT EDIT.",
		"package tzdata",
		`const TimezonesJSON = "[]"`,
	} {
		if !strings.Contains(string(src), want) {
			t.Fatalf("expected %q in:\n%s", want, src)
		}
	}
}

func TestGoSource_RejectsInvalidIdentifiers(t *testing.T) {
	if _, err := GoSource(nil, GoOptions{Package: "tz-data"}); err == nil {
		t.Fatalf("expected error for invalid package name")
	}
	if _, err := GoSource(nil, GoOptions{Name: "1zones"}); err == nil {
		t.Fatalf("expected error for invalid constant name")
	}
}

func TestHTMLOptions_ParsesBackToSameRecords(t *testing.T) {
	records := bundled(t)

	html, err := HTMLOptions(records, HTMLConfig{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := bytes.Count(html, []byte("\n")); got != len(records) {
		t.Fatalf("expected %d lines, got %d", len(records), got)
	}

	parsed, err := timezones.NewParser().ParseAll(context.Background(), bytes.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered options: %v", err)
	}
	if diff := cmp.Diff(records, parsed); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLOptions_EscapedRoundTripWithSanitizingParser(t *testing.T) {
	parser := timezones.NewParser(timezones.WithSanitize(true))
	decoded, err := parser.ParseAll(context.Background(), bytes.NewReader(mustHTML(t, bundled(t), HTMLConfig{})))
	if err != nil {
		t.Fatalf("parse bundled options: %v", err)
	}

	again, err := parser.ParseAll(context.Background(), bytes.NewReader(mustHTML(t, decoded, HTMLConfig{Escape: true})))
	if err != nil {
		t.Fatalf("parse escaped options: %v", err)
	}
	if diff := cmp.Diff(decoded, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func mustHTML(t *testing.T, records []timezones.Record, cfg HTMLConfig) []byte {
	t.Helper()
	html, err := HTMLOptions(records, cfg)
	if err != nil {
		t.Fatalf("html options: %v", err)
	}
	return html
}

func TestHTMLOptions_EscapesMarkup(t *testing.T) {
	html, err := HTMLOptions([]timezones.Record{
		{Location: "Pacific/Honolulu", GMT: "GMT-10:00", Name: "Hawaii & Aleutian <HST>", DecimalOffset: -10},
	}, HTMLConfig{Escape: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := `<option value="Pacific/Honolulu" >(GMT-10:00) Pacific/Honolulu - Hawaii &amp; Aleutian &lt;HST&gt;</option>` + "\n"
	if diff := cmp.Diff(want, string(html)); diff != "" {
		t.Fatalf("unexpected markup (-want +got):\n%s", diff)
	}
}

func TestGolden(t *testing.T) {
	records := testsupport.LoadRecords(t, "testdata/records.json")

	src, err := GoSource(records, GoOptions{Source: "records.json"})
	if err != nil {
		t.Fatalf("go source: %v", err)
	}
	testsupport.AssertGolden(t, "testdata/tzdata.go.golden", src)

	html, err := HTMLOptions(records, HTMLConfig{})
	if err != nil {
		t.Fatalf("html options: %v", err)
	}
	testsupport.AssertGolden(t, "testdata/options.html.golden", html)
}
