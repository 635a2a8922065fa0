package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-tzformat/components/timezones"
	"github.com/goliatone/go-tzformat/internal/config"
)

type convertOptions struct {
	input      string
	output     string
	minuteSign string
	indent     int
	sanitize   bool
	confirm    bool
}

func (a *app) newCmdConvert() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the option list into timezones.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConvert(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", config.DefaultInputPath, "option list to read")
	f.StringVarP(&opts.output, "output", "o", config.DefaultOutputPath, "JSON file to write")
	f.StringVar(&opts.minuteSign, "minute-sign", string(timezones.MinuteSignHour), "how minutes combine with a negative hour: hour or additive")
	f.IntVar(&opts.indent, "indent", timezones.DefaultIndent, "spaces per JSON indent level, 0 for compact output")
	f.BoolVar(&opts.sanitize, "sanitize", false, "decode entities and strip markup in locations and names")
	f.BoolVar(&opts.confirm, "confirm", false, "ask before overwriting an existing output file")
	return cmd
}

// overlay copies explicitly set flags over cfg.
func (o *convertOptions) overlay(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input = o.input
	}
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("minute-sign") {
		cfg.MinuteSign = o.minuteSign
	}
	if f.Changed("indent") {
		cfg.Indent = o.indent
	}
	if f.Changed("sanitize") {
		cfg.Sanitize = o.sanitize
	}
	if f.Changed("confirm") {
		cfg.ConfirmOverwrite = o.confirm
	}
}

func (a *app) runConvert(cmd *cobra.Command, opts *convertOptions) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	opts.overlay(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode, err := timezones.ParseMinuteSign(cfg.MinuteSign)
	if err != nil {
		return err
	}

	logger, err := a.logger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.ConfirmOverwrite {
		exists, err := afero.Exists(a.deps.Fs, cfg.Output)
		if err != nil {
			return err
		}
		if exists {
			ok, err := a.deps.Confirmer.Confirm(ctx, fmt.Sprintf("Overwrite %s?", cfg.Output), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(a.errOut, "%s left unchanged\n", cfg.Output)
				return nil
			}
		}
	}

	parser := timezones.NewParser(
		timezones.WithMinuteSign(mode),
		timezones.WithSanitize(cfg.Sanitize),
	)
	res, err := timezones.Convert(ctx, cfg.Input, cfg.Output,
		timezones.WithFs(a.deps.Fs),
		timezones.WithParser(parser),
		timezones.WithLogger(logger),
		timezones.WithIndent(cfg.Indent),
	)
	if err != nil {
		var perr *timezones.ParseError
		if errors.As(err, &perr) {
			reportParseError(a.out, perr)
		}
		return err
	}

	logger.Debug("conversion finished", zap.String("output", res.OutputPath), zap.Int("bytes", res.Bytes))

	if first, ok := res.First(); ok {
		line, err := json.Marshal(first)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n", line)
	}
	fmt.Fprintf(a.out, "wrote %d records to %s\n", len(res.Records), res.OutputPath)
	return nil
}

// reportParseError echoes the offending line and the state of each field
// pattern so the input can be fixed by hand.
func reportParseError(w io.Writer, perr *timezones.ParseError) {
	fmt.Fprintf(w, "line %d could not be parsed, nothing was written\n", perr.Line)
	fmt.Fprintf(w, "  text: %s\n", perr.Text)

	missing := make(map[string]bool, len(perr.Missing))
	for _, field := range perr.Missing {
		missing[field] = true
	}
	for _, field := range []string{timezones.FieldLocation, timezones.FieldGMT, timezones.FieldName} {
		state := "ok"
		if missing[field] {
			state = "no match"
		}
		fmt.Fprintf(w, "  %s: %s\n", field, state)
	}
	if len(perr.Missing) == 0 && perr.Err != nil {
		fmt.Fprintf(w, "  error: %v\n", perr.Err)
	}
}
