// Package timezones converts HTML timezone <option> lists into a JSON data
// file and serves the result.
//
// Each option line yields a Record holding the location identifier, the raw
// GMT token, the display name and the offset in decimal hours. Conversion is
// all or nothing: the first malformed line aborts the run and no output is
// written. The package also bundles a converted dataset under
// data/timezones.json, a location lookup Table, and a small net/http handler
// that searches records and returns them as value/label options.
package timezones
