package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seokhojung/befunweb/internal/feed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		count int
		seed  int64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "feedgen",
		Short: "Write a reproducible synthetic catalog feed",
		Long: `Generates a JSON array of sparse source records for load-testing the
catalog migration. The same count and seed always produce the same feed.
Point CATALOG_FEED_PATH at the output to serve it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create feed file: %w", err)
				}
				defer f.Close()
				w = f
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(feed.Synthetic(count, seed)); err != nil {
				return fmt.Errorf("encode feed: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 10000, "number of records")
	f.Int64Var(&seed, "seed", feed.DefaultSyntheticSeed, "random seed")
	f.StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
