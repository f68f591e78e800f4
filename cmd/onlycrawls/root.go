package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for onlycrawls. The root command is
// the crawl itself; the tool is single-purpose.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onlycrawls [url]",
		Short: "Depth-bounded same-domain BFS website crawler",
		Long: `onlycrawls crawls a single website breadth-first, following only
same-domain links up to a configurable depth, and writes the list of
successfully fetched pages to a CSV file.

The frontier is seeded from /sitemap.xml when the site publishes one,
falling back to the homepage otherwise. robots.txt wildcard rules are
respected when available. When no URL argument is given, the target is
read from an interactive prompt.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCrawlCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntP("tasks", "t", 0,
		"Maximum concurrent fetch tasks (default 500)")
	cmd.Flags().IntP("depth", "d", 0,
		"Maximum traversal depth in link-hops from the seed set (default 3)")
	cmd.Flags().StringP("output", "o", "",
		"CSV output path (default depth_crawled_urls.csv)")
	cmd.Flags().StringP("config", "c", "",
		"YAML config file path (optional; flags override file values)")
	cmd.Flags().StringP("loglevel", "l", "info",
		"Log level (debug, info, warn, error, fatal)")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
