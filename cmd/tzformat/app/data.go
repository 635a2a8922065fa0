package app

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-tzformat/components/timezones"
)

// dataSource selects the records read by lookup, gen and serve.
type dataSource struct {
	path    string
	bundled bool
}

func (d *dataSource) addFlags(f *pflag.FlagSet) {
	f.StringVar(&d.path, "data", "", "timezones.json to read (default: configured output)")
	f.BoolVar(&d.bundled, "bundled", false, "use the records compiled into tzformat")
}

func (a *app) records(d *dataSource) ([]timezones.Record, error) {
	if d.bundled {
		return timezones.DefaultRecords()
	}
	path := d.path
	if path == "" {
		cfg, err := a.loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Output
	}

	f, err := a.deps.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := timezones.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.out.Write(data)
		return err
	}
	return afero.WriteFile(a.deps.Fs, path, data, 0o644)
}
