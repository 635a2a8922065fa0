package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-tzformat/components/timezones"
)

type lookupOptions struct {
	data dataSource
	at   string
}

func (a *app) newCmdLookup() *cobra.Command {
	opts := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "lookup LOCATION...",
		Short: "Print the decimal offset of one or more locations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runLookup(opts, args)
		},
	}
	opts.data.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.at, "at", "", "RFC 3339 instant to show as local time in each location")
	return cmd
}

func (a *app) table(d *dataSource) (*timezones.Table, error) {
	if d.bundled {
		return timezones.DefaultTable()
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

	table, err := timezones.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func (a *app) runLookup(opts *lookupOptions, locations []string) error {
	var at time.Time
	if opts.at != "" {
		parsed, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		at = parsed
	}

	table, err := a.table(&opts.data)
	if err != nil {
		return err
	}

	for _, loc := range locations {
		offset, ok := table.Offset(loc)
		if !ok {
			return fmt.Errorf("unknown location %q", loc)
		}
		text, err := timezones.Offset(offset).MarshalJSON()
		if err != nil {
			return err
		}
		if at.IsZero() {
			fmt.Fprintf(a.out, "%s\t%s\n", loc, text)
			continue
		}
		zone, _ := table.FixedZone(loc)
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", loc, text, at.In(zone).Format(time.RFC3339))
	}
	return nil
}
