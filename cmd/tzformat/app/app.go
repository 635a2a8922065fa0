// Package app wires the tzformat commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-tzformat/internal/config"
	"github.com/goliatone/go-tzformat/internal/logging"
	"github.com/goliatone/go-tzformat/internal/prompt"
)

// Deps are the process-level collaborators. Zero values select the real
// implementations.
type Deps struct {
	Fs        afero.Fs
	Confirmer prompt.Confirmer
	Getenv    func(string) string
	// Logger overrides the logger built from configuration.
	Logger *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Confirmer == nil {
		d.Confirmer = prompt.Survey()
	}
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	return d
}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	envPath    string
	logLevel   string
}

type app struct {
	deps   Deps
	out    io.Writer
	errOut io.Writer
	global globalOptions
}

// Run executes the command line and returns the error that should set a
// non-zero exit status. Errors are already reported on errOut.
func Run(ctx context.Context, out, errOut io.Writer, args []string, deps Deps) error {
	root := NewRootCmd(out, errOut, deps)
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "tzformat: %v\n", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree. Without a subcommand it converts.
func NewRootCmd(out, errOut io.Writer, deps Deps) *cobra.Command {
	a := &app{deps: deps.withDefaults(), out: out, errOut: errOut}

	convert := a.newCmdConvert()
	root := &cobra.Command{
		Use:   "tzformat",
		Short: "Convert HTML timezone <option> lists into a JSON data file",
		Long: "tzformat reads timezone_html_options.txt, extracts the location, GMT offset\n" +
			"and display name of every <option> line, and writes timezones.json.\n" +
			"A malformed line aborts the run without writing any output.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          convert.RunE,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.global.configPath, "config", "", "YAML config file (default tzformat.yaml when present)")
	flags.StringVar(&a.global.envPath, "env-file", "", "dotenv file (default .env when present)")
	flags.StringVar(&a.global.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.Flags().AddFlagSet(convert.Flags())
	root.AddCommand(convert, a.newCmdLookup(), a.newCmdGen(), a.newCmdServe())
	return root
}

// loadConfig resolves file and environment settings; callers overlay flags
// and validate.
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.Source{
		ConfigPath: a.global.configPath,
		EnvPath:    a.global.envPath,
		Fs:         a.deps.Fs,
		Getenv:     a.deps.Getenv,
	})
	if err != nil {
		return cfg, err
	}
	if a.global.logLevel != "" {
		cfg.LogLevel = a.global.logLevel
	}
	return cfg, nil
}

func (a *app) logger(level string) (*zap.Logger, error) {
	if a.deps.Logger != nil {
		return a.deps.Logger, nil
	}
	return logging.New(level)
}
