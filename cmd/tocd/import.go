package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import markdown files as pages",
		Long: `Import every markdown file below dir (default CONTENT_DIR) into the database.
Each file becomes a page and each heading below the title a content element.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			dir := a.cfg.ContentDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return errors.New("no directory given and CONTENT_DIR is not set")
			}

			ctx := a.withLogger(cmd.Context())
			imp := a.importer()
			stats, importErr := imp.ImportAll(ctx, dir)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(stats); err != nil {
				return fmt.Errorf("failed to write stats: %w", err)
			}
			if importErr != nil || !watch {
				return importErr
			}

			a.logger.InfoContext(ctx, "Watching for changes", "dir", dir)
			return imp.Watch(ctx, dir)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and re-import changed files")
	return cmd
}
