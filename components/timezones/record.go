package timezones

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one timezone entry extracted from an HTML option line.
type Record struct {
	Location      string `json:"location"`
	GMT           string `json:"gmt_t"`
	Name          string `json:"t_name"`
	DecimalOffset Offset `json:"decimal_offset"`
}

// Label renders the human readable option label, e.g. "(GMT-05:00) Eastern Time".
func (r Record) Label() string {
	if r.GMT == "" {
		return r.Name
	}
	return fmt.Sprintf("(%s) %s", r.GMT, r.Name)
}

// Offset is a GMT offset expressed in hours. It always serializes with a
// fractional part so whole hours read as -5.0 rather than -5.
type Offset float64

// Float64 returns the offset as a plain float.
func (o Offset) Float64() float64 { return float64(o) }

// Seconds returns the offset in whole seconds east of UTC.
func (o Offset) Seconds() int {
	return int(math.Round(float64(o) * 3600))
}

func (o Offset) MarshalJSON() ([]byte, error) {
	v := float64(o)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("timezones: invalid offset %v", v)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return []byte(s), nil
}

func (o *Offset) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("timezones: decimal_offset is null")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("timezones: decimal_offset is not a number: %s", data)
	}
	*o = Offset(v)
	return nil
}

func roundOffset(v float64) Offset {
	r := math.Round(v*100) / 100
	if r == 0 {
		// normalise -0
		r = 0
	}
	return Offset(r)
}
