package timezones

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine reports a line missing one of the required fields.
	ErrMalformedLine = errors.New("timezones: malformed option line")
	// ErrOffsetRange reports a GMT token whose hour or minute is out of range.
	ErrOffsetRange = errors.New("timezones: gmt offset out of range")
	// ErrNoRecords is returned when the input holds no lines at all.
	ErrNoRecords = errors.New("timezones: input contains no records")
)

// Field names used in ParseError.Missing. They match the JSON keys.
const (
	FieldLocation = "location"
	FieldGMT      = "gmt_t"
	FieldName     = "t_name"
)

var (
	locationPattern = regexp.MustCompile(`value="([^"]*)" `)
	gmtPattern      = regexp.MustCompile(`GMT([+-])(\d{1,2}):(\d{2})`)
	namePattern     = regexp.MustCompile(` - ([^<]*)<`)
)

const maxLineSize = 1024 * 1024

// MinuteSign selects how the minute part of a GMT token is combined with the hour.
type MinuteSign string

const (
	// MinuteSignHour gives minutes the sign of the hour: GMT-09:30 is -9.5.
	MinuteSignHour MinuteSign = "hour"
	// MinuteSignAdditive always adds minutes: GMT-09:30 is -8.5. This
	// reproduces files generated by the legacy converter.
	MinuteSignAdditive MinuteSign = "additive"
)

// ParseMinuteSign validates a textual minute sign mode. Empty selects the default.
func ParseMinuteSign(raw string) (MinuteSign, error) {
	switch MinuteSign(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MinuteSignHour:
		return MinuteSignHour, nil
	case MinuteSignAdditive:
		return MinuteSignAdditive, nil
	}
	return "", fmt.Errorf("timezones: unknown minute sign mode %q", raw)
}

// ParseError describes a line that could not be turned into a Record.
type ParseError struct {
	// Line is the 1-based line number, zero when parsing a single line.
	Line int
	// Text is the raw line before en-dash folding.
	Text string
	// Missing lists the fields whose pattern did not match.
	Missing []string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("timezones: parse error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " on line %d", e.Line)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	fmt.Fprintf(&b, " in %q", e.Text)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedLine
}

// Parser turns option lines into Records.
type Parser struct {
	minuteSign MinuteSign
	sanitize   bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMinuteSign selects the minute sign convention.
func WithMinuteSign(mode MinuteSign) ParserOption {
	return func(p *Parser) {
		if mode == "" {
			mode = MinuteSignHour
		}
		p.minuteSign = mode
	}
}

// WithSanitize toggles HTML entity decoding, markup stripping and NFC
// normalization of the extracted location and name. Disabled by default, so
// "Hawaii &amp; Aleutian" is kept as written.
func WithSanitize(enabled bool) ParserOption {
	return func(p *Parser) {
		p.sanitize = enabled
	}
}

// NewParser builds a Parser with MinuteSignHour and sanitizing disabled.
func NewParser(fns ...ParserOption) *Parser {
	p := &Parser{minuteSign: MinuteSignHour}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseLine parses a single line with the default parser.
func ParseLine(line string) (Record, error) {
	return defaultParser.ParseLine(line)
}

// ParseLine extracts a Record from one option line.
func (p *Parser) ParseLine(line string) (Record, error) {
	cleaned := foldDashes(line)

	loc := locationPattern.FindStringSubmatch(cleaned)
	gmt := gmtPattern.FindString(cleaned)
	name := namePattern.FindStringSubmatch(cleaned)

	var missing []string
	if loc == nil {
		missing = append(missing, FieldLocation)
	}
	if gmt == "" {
		missing = append(missing, FieldGMT)
	}
	if name == nil {
		missing = append(missing, FieldName)
	}
	if len(missing) > 0 {
		return Record{}, &ParseError{Text: line, Missing: missing}
	}

	offset, err := DecimalOffset(gmt, p.minuteSign)
	if err != nil {
		return Record{}, &ParseError{Text: line, Err: err}
	}

	rec := Record{
		Location:      strings.TrimSpace(loc[1]),
		GMT:           gmt,
		Name:          name[1],
		DecimalOffset: offset,
	}
	if p.sanitize {
		rec.Location = strings.TrimSpace(cleanText(rec.Location))
		rec.Name = normalizeName(cleanText(rec.Name))
	}
	return rec, nil
}

// ParseAll parses every line of r, stopping at the first failure. On failure
// no records are returned.
func (p *Parser) ParseAll(ctx context.Context, r io.Reader) ([]Record, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := make([]Record, 0, 512)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		rec, err := p.ParseLine(scanner.Text())
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = lineNo
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read input: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// DecimalOffset converts a GMT token such as "GMT+05:30" into hours rounded to
// two decimals.
func DecimalOffset(gmt string, mode MinuteSign) (Offset, error) {
	m := gmtPattern.FindStringSubmatch(foldDashes(gmt))
	if m == nil {
		return 0, fmt.Errorf("%w: %q is not a GMT offset", ErrMalformedLine, gmt)
	}

	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("timezones: hour in %q: %w", gmt, err)
	}
	minutes, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, fmt.Errorf("timezones: minute in %q: %w", gmt, err)
	}
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %s", ErrOffsetRange, gmt)
	}

	sign := 1
	if m[1] == "-" {
		sign = -1
	}

	var total int
	switch mode {
	case MinuteSignAdditive:
		total = sign*hours*60 + minutes
	default:
		total = sign * (hours*60 + minutes)
	}
	return roundOffset(float64(total) / 60), nil
}
