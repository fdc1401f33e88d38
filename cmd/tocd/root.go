package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sectiontoc/internal/config"
	"sectiontoc/internal/contextutil"
	"sectiontoc/internal/importer"
	"sectiontoc/internal/registry"
	"sectiontoc/internal/service"
	"sectiontoc/internal/storage"
	"sectiontoc/internal/toc"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tocd",
		Short: "Table of contents service for page content elements",
		Long: `tocd builds tables of contents from the content elements of pages.
Markdown documents can be imported as pages, and the table of contents is served over HTTP
or printed on the command line.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newImportCmd(), newBuildCmd())
	return root
}

// app holds the wired components shared by all commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	registry *registry.Registry
	pages    *storage.PageRepo
	content  *storage.ContentRepo
}

// newApp loads configuration, configures logging and opens the migrated database.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	logger.DebugContext(ctx, "Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	reg := registry.FromList(cfg.ContainerTypes)
	if cfg.ContainerRegistryPath != "" {
		fileReg, err := registry.LoadFile(cfg.ContainerRegistryPath)
		if err != nil {
			return nil, err
		}
		reg.Merge(fileReg)
	}
	// Imported pages nest under this type whether or not this process imports.
	reg.Register(importer.ContainerDefinition(cfg.ImportContainerType))
	logger.InfoContext(ctx, "Container registry loaded", "types", reg.Types())

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		registry: reg,
		pages:    storage.NewPageRepo(db),
		content:  storage.NewContentRepo(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// withLogger returns ctx carrying the application logger.
func (a *app) withLogger(ctx context.Context) context.Context {
	return contextutil.WithLogger(ctx, a.logger)
}

func (a *app) importer() *importer.Importer {
	return importer.New(a.pages, a.content, a.registry,
		importer.WithLogger(a.logger),
		importer.WithContainerType(a.cfg.ImportContainerType),
	)
}

func (a *app) tocService() service.TocService {
	builder := toc.NewBuilder(a.content, a.registry, toc.WithLogger(a.logger))
	return service.NewTocService(builder, a.pages, a.cfg.TocDefaults(), service.WithLogger(a.logger))
}
