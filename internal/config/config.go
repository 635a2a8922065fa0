// Package config resolves tzformat settings from an optional YAML file, an
// optional .env file, TZFORMAT_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInputPath  = "timezone_html_options.txt"
	DefaultOutputPath = "timezones.json"
	DefaultConfigPath = "tzformat.yaml"
	DefaultEnvPath    = ".env"
)

// Environment variables read by Load.
const (
	EnvInput      = "TZFORMAT_INPUT"
	EnvOutput     = "TZFORMAT_OUTPUT"
	EnvMinuteSign = "TZFORMAT_MINUTE_SIGN"
	EnvIndent     = "TZFORMAT_INDENT"
	EnvLogLevel   = "TZFORMAT_LOG_LEVEL"
)

type Config struct {
	Input            string `yaml:"input" validate:"required"`
	Output           string `yaml:"output" validate:"required"`
	Indent           int    `yaml:"indent" validate:"min=0,max=8"`
	MinuteSign       string `yaml:"minute_sign" validate:"oneof=hour additive"`
	Sanitize         bool   `yaml:"sanitize"`
	ConfirmOverwrite bool   `yaml:"confirm_overwrite"`
	LogLevel         string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

func Default() Config {
	return Config{
		Input:      DefaultInputPath,
		Output:     DefaultOutputPath,
		Indent:     2,
		MinuteSign: "hour",
		LogLevel:   "info",
	}
}

// Source tells Load where to look. Empty paths fall back to the defaults,
// which may be absent; explicitly named files must exist.
type Source struct {
	ConfigPath string
	EnvPath    string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Load builds a Config from defaults, the YAML file and the environment. It
// does not validate; call Validate after applying flags.
func Load(src Source) (Config, error) {
	cfg := Default()

	fsys := src.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	dotenv, err := loadDotenv(fsys, src.EnvPath)
	if err != nil {
		return cfg, err
	}

	path, required := src.ConfigPath, true
	if strings.TrimSpace(path) == "" {
		path, required = DefaultConfigPath, false
	}
	if err := loadFile(fsys, &cfg, path, required); err != nil {
		return cfg, err
	}

	// Process environment wins over the .env file.
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadDotenv(fsys afero.Fs, path string) (map[string]string, error) {
	required := true
	if strings.TrimSpace(path) == "" {
		path, required = DefaultEnvPath, false
	}
	f, err := fsys.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: open env file %s: %w", path, err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse env file %s: %w", path, err)
	}
	return values, nil
}

func loadFile(fsys afero.Fs, cfg *Config, path string, required bool) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(cfg, data); err != nil {
		return fmt.Errorf("config: %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Parse overlays YAML onto cfg. Keys absent from data keep their current value.
func Parse(cfg *Config, data []byte) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvInput)); v != "" {
		cfg.Input = v
	}
	if v := strings.TrimSpace(getenv(EnvOutput)); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(getenv(EnvMinuteSign)); v != "" {
		cfg.MinuteSign = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvIndent)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not an integer", EnvIndent, v)
		}
		cfg.Indent = n
	}
	return nil
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: validate: %w", err)
		}
		for _, fe := range verrs {
			result = multierror.Append(result, fieldError(fe))
		}
	}

	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		result = multierror.Append(result, fmt.Errorf("output %q would overwrite the input", c.Output))
	}

	return result.ErrorOrNil()
}

func fieldError(fe validator.FieldError) error {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "min":
		return fmt.Errorf("%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	case "max":
		return fmt.Errorf("%s must be at most %s, got %v", name, fe.Param(), fe.Value())
	}
	return fmt.Errorf("%s failed %s validation", name, fe.Tag())
}
