package timezones

import (
	"embed"
	"sync"
)

//go:embed data/timezones.json
var dataFS embed.FS

const defaultDataPath = "data/timezones.json"

var (
	defaultOnce    sync.Once
	defaultRecords []Record
	defaultErr     error
)

// DefaultRecords returns a copy of the bundled dataset, in file order.
func DefaultRecords() ([]Record, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		records, err := Decode(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultRecords = records
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Record{}, defaultRecords...), nil
}

// DefaultTable indexes the bundled dataset.
func DefaultTable() (*Table, error) {
	records, err := DefaultRecords()
	if err != nil {
		return nil, err
	}
	return NewTable(records), nil
}
