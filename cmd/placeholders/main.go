package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/placeholder"
	"github.com/seokhojung/befunweb/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := placeholder.DefaultOptions()
	layout := imageresolver.DefaultLayout()
	var (
		outDir   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "placeholders",
		Short: "Write placeholder product images and color swatches",
		Long: `Renders flat-color main, hover and swatch images at the asset paths the
catalog service generates, so a static file server can serve them before
real photography exists.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			log := logger.New("catalog-placeholders", logLevel)
			res, err := placeholder.New(layout, log).Generate(ctx, outDir, opts)
			if err != nil {
				return fmt.Errorf("generate placeholders: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d placeholder images (main %d, hover %d, swatches %d) under %s\n",
				res.Total(), res.Main, res.Hover, res.Swatches, outDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outDir, "out", "o", "public", "directory the asset root is created under")
	f.StringVar(&layout.Root, "root", layout.Root, "asset root path")
	f.StringVar(&layout.Ext, "ext", layout.Ext, "image file extension (png, jpg, gif, bmp, tif)")
	f.StringSliceVar(&opts.Categories, "categories", opts.Categories, "categories to render main and hover images for")
	f.IntVarP(&opts.Count, "count", "n", opts.Count, "product indices per category")
	f.IntVar(&opts.Workers, "workers", opts.Workers, "concurrent writers")
	f.StringVar(&logLevel, "log-level", "info", "log level")

	cmd.SetContext(context.Background())
	return cmd
}
