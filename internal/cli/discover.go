package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chronomap/internal/source"
)

var (
	sourceName      string
	discoverTimeout time.Duration
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <index-url>",
	Short: "Discover maps from an online archive index",
	Long: `Discover fetches an archive index page, honoring robots.txt and
per-domain rate limits, extracts map records from its links, and merges
them into the local catalog used by play.

Example:
  chronomap discover https://archive.example/maps/ --source "Example Archive"`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&sourceName, "source", "archive", "source name recorded on discovered maps")
	discoverCmd.Flags().DurationVar(&discoverTimeout, "timeout", 2*time.Minute, "total discovery timeout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	indexURL := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
	defer cancel()

	cfg := loadConfig()

	catalog, err := source.LoadCatalog(cfg.Game.MapsDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	fetcher := source.NewArchiveFetcher(cfg.HTTP, cfg.Cache)

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching index: %s\n", indexURL)
	}

	maps, err := fetcher.DiscoverMaps(ctx, indexURL, sourceName)
	if err != nil {
		return fmt.Errorf("discover maps: %w", err)
	}

	added := catalog.Add(maps...)
	if err := catalog.Save(); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}

	fmt.Printf("Found %d map records, added %d new (catalog now %d maps)\n",
		len(maps), added, catalog.Len())
	return nil
}
