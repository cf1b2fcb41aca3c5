package commands

import (
	"log/slog"

	"gathergen/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(purgeCacheCmd)
}

var purgeCacheCmd = &cobra.Command{
	Use:   "purge-cache",
	Short: "Drops expired entries from the page cache.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		cache := openCache(cfg)
		if cache == nil {
			slog.Info("no page cache configured, nothing to purge")
			return
		}

		dropped, err := cache.Purge(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to purge page cache", err)
		}
		slog.Info("purged page cache", "dropped", dropped)
	},
}
