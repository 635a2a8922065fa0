package app

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-tzformat/internal/codegen"
)

func (a *app) newCmdGen() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Render converted records as Go source or an HTML option list",
	}
	cmd.AddCommand(a.newCmdGenGo(), a.newCmdGenHTML())
	return cmd
}

func (a *app) newCmdGenGo() *cobra.Command {
	var (
		data dataSource
		out  string
		opts codegen.GoOptions
	)
	cmd := &cobra.Command{
		Use:   "go",
		Short: "Write a Go file embedding the records as a JSON constant",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			records, err := a.records(&data)
			if err != nil {
				return err
			}
			if opts.Source == "" && !data.bundled {
				opts.Source = data.path
			}
			src, err := codegen.GoSource(records, opts)
			if err != nil {
				return err
			}
			return a.writeOutput(out, src)
		},
	}
	data.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&out, "out", "", "file to write (default stdout)")
	cmd.Flags().StringVar(&opts.Package, "package", "tzdata", "package clause of the generated file")
	cmd.Flags().StringVar(&opts.Name, "name", "TimezonesJSON", "name of the generated constant")
	return cmd
}

func (a *app) newCmdGenHTML() *cobra.Command {
	var (
		data dataSource
		out  string
		cfg  codegen.HTMLConfig
	)
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Write the records back as <option> lines",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			records, err := a.records(&data)
			if err != nil {
				return err
			}
			page, err := codegen.HTMLOptions(records, cfg)
			if err != nil {
				return err
			}
			return a.writeOutput(out, page)
		},
	}
	data.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&out, "out", "", "file to write (default stdout)")
	cmd.Flags().BoolVar(&cfg.Escape, "escape", false, "HTML-escape text, for records converted with --sanitize")
	return cmd
}
