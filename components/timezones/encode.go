package timezones

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DefaultIndent is the number of spaces used per nesting level in output files.
const DefaultIndent = 2

// Encode writes records as an indented JSON array followed by a newline.
// HTML characters are written verbatim, and non-ASCII text is written as
// UTF-8 rather than \u escapes.
func Encode(w io.Writer, records []Record, indent int) error {
	if w == nil {
		return fmt.Errorf("timezones: missing writer")
	}
	if records == nil {
		records = []Record{}
	}
	if indent < 0 {
		indent = DefaultIndent
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("timezones: encode records: %w", err)
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(records []Record, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wireRecord detects keys that are missing or null.
type wireRecord struct {
	Location      *string `json:"location"`
	GMT           *string `json:"gmt_t"`
	Name          *string `json:"t_name"`
	DecimalOffset *Offset `json:"decimal_offset"`
}

// Decode reads a document produced by Encode. Every entry must carry all four
// keys with non-null values.
func Decode(r io.Reader) ([]Record, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}
	var wire []wireRecord
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("timezones: decode records: %w", err)
	}
	if wire == nil {
		return nil, fmt.Errorf("timezones: decode records: document is not an array")
	}

	records := make([]Record, 0, len(wire))
	for i, w := range wire {
		var missing []string
		if w.Location == nil {
			missing = append(missing, FieldLocation)
		}
		if w.GMT == nil {
			missing = append(missing, FieldGMT)
		}
		if w.Name == nil {
			missing = append(missing, FieldName)
		}
		if w.DecimalOffset == nil {
			missing = append(missing, "decimal_offset")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("timezones: decode records: entry %d: missing %s", i, strings.Join(missing, ", "))
		}
		records = append(records, Record{
			Location:      *w.Location,
			GMT:           *w.GMT,
			Name:          *w.Name,
			DecimalOffset: *w.DecimalOffset,
		})
	}
	return records, nil
}
