package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-tzformat/components/timezones"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	data     dataSource
	addr     string
	basePath string
	emptyTop bool
}

func (a *app) newCmdServe() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve timezone search and offset lookup over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context(), opts)
		},
	}
	opts.data.addFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&opts.basePath, "base-path", "/", "path prefix for the API routes")
	cmd.Flags().BoolVar(&opts.emptyTop, "empty-top", false, "answer an empty query with the first records instead of nothing")
	return cmd
}

// newServeMux mounts the timezone routes for records under basePath.
func newServeMux(records []timezones.Record, basePath string, emptyTop bool) (*http.ServeMux, timezones.Routes, error) {
	fns := []timezones.OptionFn{timezones.WithRecords(records)}
	if emptyTop {
		fns = append(fns, timezones.WithEmptySearchMode(timezones.EmptySearchTop))
	}
	mux := http.NewServeMux()
	routes, err := timezones.New(fns...).RegisterRoutes(mux, basePath)
	if err != nil {
		return nil, timezones.Routes{}, err
	}
	return mux, routes, nil
}

func (a *app) runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, err := a.logger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	records, err := a.records(&opts.data)
	if err != nil {
		return err
	}
	mux, routes, err := newServeMux(records, opts.basePath, opts.emptyTop)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving timezones",
		zap.String("addr", opts.addr),
		zap.String("search", routes.Search),
		zap.String("offset", routes.Offset),
		zap.Int("records", len(records)),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", opts.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
