package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sectiontoc/internal/http"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the table of contents API server",
		Long: `Start the HTTP API. When CONTENT_DIR is set its markdown files are imported
before the server starts, and with --watch changes are re-imported while it runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			return a.serve(cmd.Context(), watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-import CONTENT_DIR when files change")
	return cmd
}

func (a *app) serve(ctx context.Context, watch bool) error {
	ctx = a.withLogger(ctx)
	g, ctx := errgroup.WithContext(ctx)

	if a.cfg.ContentDir != "" {
		imp := a.importer()
		stats, err := imp.ImportAll(ctx, a.cfg.ContentDir)
		if err != nil {
			a.logger.ErrorContext(ctx, "Import completed with errors", "error", err)
		} else {
			a.logger.InfoContext(ctx, "Import completed successfully", "imported", stats.Imported)
		}
		if watch {
			g.Go(func() error {
				return imp.Watch(ctx, a.cfg.ContentDir)
			})
		}
	} else if watch {
		a.logger.WarnContext(ctx, "--watch ignored, CONTENT_DIR is not set")
	}

	router := http.NewRouter(&http.Deps{
		TocService: a.tocService(),
		DB:         a.db,
	})
	server := &nethttp.Server{
		Addr:              ":" + a.cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		slog.InfoContext(ctx, "Starting API server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		slog.InfoContext(ctx, "Shutting down API server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
