package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sectiontoc/internal/service"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type buildOptions struct {
	pages          string
	current        int
	exclude        int
	mode           string
	include        string
	excludeColPos  string
	maxDepth       string
	anchorOverride bool
	format         string
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the table of contents of one or more pages",
		Long: `Build the sorted table of contents for the given pages and print it,
either as an indented tree or as JSON.`,
		Example: `  tocd build --pages 1,2 --mode all
  tocd build --pages this --current 3 --max-depth 2 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatText, formatJSON)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			resp, err := a.tocService().BuildToc(a.withLogger(cmd.Context()), opts.request(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp.Entries)
			}
			_, err = fmt.Fprint(out, renderTree(resp))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.pages, "pages", "", `Comma-separated page ids ("this" means --current)`)
	f.IntVar(&opts.current, "current", 0, "Page id standing in for \"this\"")
	f.IntVar(&opts.exclude, "exclude-element", 0, "Element id left out together with its subtree")
	f.StringVar(&opts.mode, "mode", "", "Selection mode (sectionIndexOnly, visibleHeaders, all)")
	f.StringVar(&opts.include, "include", "", `Comma-separated column positions to include ("*" for all)`)
	f.StringVar(&opts.excludeColPos, "exclude", "", "Comma-separated column positions to exclude")
	f.StringVar(&opts.maxDepth, "max-depth", "", "Maximum depth (0 = unlimited)")
	f.BoolVar(&opts.anchorOverride, "anchor-override", false, "Use element anchors instead of #c<id>")
	f.StringVarP(&opts.format, "format", "o", formatText, "Output format (text, json)")
	return cmd
}

// request maps the flags to a service request. Unset flags keep the configured defaults.
func (o buildOptions) request(cmd *cobra.Command) service.TocRequest {
	req := service.TocRequest{
		Pages:            o.pages,
		CurrentPageID:    o.current,
		CurrentElementID: o.exclude,
		Mode:             o.mode,
		IncludeColPos:    o.include,
		ExcludeColPos:    o.excludeColPos,
		MaxDepth:         o.maxDepth,
	}
	if cmd.Flags().Changed("anchor-override") {
		v := o.anchorOverride
		req.UseAnchorOverride = &v
	}
	return req
}
