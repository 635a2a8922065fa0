package timezones

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Request names the files a conversion reads and writes.
type Request struct {
	InputPath  string
	OutputPath string
}

// Result summarises a successful conversion.
type Result struct {
	Records    []Record
	OutputPath string
	Bytes      int
}

// First returns the first converted record.
func (r Result) First() (Record, bool) {
	if len(r.Records) == 0 {
		return Record{}, false
	}
	return r.Records[0], true
}

// Converter reads an option list, parses it and writes the JSON document.
type Converter struct {
	fs     afero.Fs
	parser *Parser
	logger *zap.Logger
	indent int
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithFs swaps the filesystem, e.g. for afero.NewMemMapFs in tests.
func WithFs(fs afero.Fs) ConverterOption {
	return func(c *Converter) {
		if fs != nil {
			c.fs = fs
		}
	}
}

func WithParser(p *Parser) ConverterOption {
	return func(c *Converter) {
		if p != nil {
			c.parser = p
		}
	}
}

func WithLogger(logger *zap.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIndent sets spaces per level. Zero writes compact JSON.
func WithIndent(n int) ConverterOption {
	return func(c *Converter) {
		if n >= 0 {
			c.indent = n
		}
	}
}

func NewConverter(fns ...ConverterOption) *Converter {
	c := &Converter{
		fs:     afero.NewOsFs(),
		parser: NewParser(),
		logger: zap.NewNop(),
		indent: DefaultIndent,
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(c)
	}
	return c
}

// Convert runs a conversion with a fresh Converter.
func Convert(ctx context.Context, inputPath, outputPath string, fns ...ConverterOption) (Result, error) {
	return NewConverter(fns...).Convert(ctx, Request{InputPath: inputPath, OutputPath: outputPath})
}

// Convert parses every input line before touching the output. The document is
// written to a temp file next to the target and renamed over it, so a failed
// run leaves any previous output as it was.
func (c *Converter) Convert(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	in := strings.TrimSpace(req.InputPath)
	out := strings.TrimSpace(req.OutputPath)
	if in == "" {
		return Result{}, fmt.Errorf("timezones: input path is required")
	}
	if out == "" {
		return Result{}, fmt.Errorf("timezones: output path is required")
	}

	log := c.logger.With(zap.String("input", in), zap.String("output", out))

	data, err := afero.ReadFile(c.fs, in)
	if err != nil {
		return Result{}, fmt.Errorf("timezones: read %s: %w", in, err)
	}

	records, err := c.parser.ParseAll(ctx, bytes.NewReader(data))
	if err != nil {
		log.Error("conversion aborted, output not written", zap.Error(err))
		return Result{}, err
	}
	log.Debug("parsed input", zap.Int("records", len(records)))

	payload, err := Marshal(records, c.indent)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := c.writeAtomic(out, payload); err != nil {
		return Result{}, err
	}

	first := records[0]
	log.Info("wrote timezones",
		zap.Int("records", len(records)),
		zap.Int("bytes", len(payload)),
		zap.String("first_location", first.Location),
		zap.String("first_gmt", first.GMT),
		zap.Float64("first_offset", first.DecimalOffset.Float64()),
	)

	return Result{Records: records, OutputPath: out, Bytes: len(payload)}, nil
}

func (c *Converter) writeAtomic(path string, payload []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(c.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("timezones: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = c.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("timezones: write %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("timezones: close %s: %w", tmpName, err)
	}
	if err = c.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("timezones: chmod %s: %w", tmpName, err)
	}
	if err = c.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("timezones: rename %s: %w", tmpName, err)
	}
	return nil
}
