package commands

import (
	"log/slog"
	"os"
	"time"

	"gathergen/lib/pagecache"
	"gathergen/lib/restyutil"
	"gathergen/lib/scrapers/wowhead"
	"gathergen/lib/serviceutil"
	"gathergen/services/gatherdata"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	generateCategories *[]string
	generateOutput     *string
	generateNoCache    *bool
)

func init() {
	generateCategories = generateCmd.Flags().StringSlice(
		"category", nil,
		"Categories to generate (Herb, Mine, Fish, Treasure). Defaults to Herb, Mine and Fish.",
	)
	generateOutput = generateCmd.Flags().String(
		"output", "",
		"Directory to write the data files to, overrides the config.",
	)
	generateNoCache = generateCmd.Flags().Bool(
		"no-cache", false,
		"Fetch every page fresh even when a page cache is configured.",
	)
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [--category Herb,Mine] [--output <dir>]",
	Short: "Scrapes object locations and writes the GatherMate2 data tables.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := readConfig()

		categories := gatherdata.DefaultCategories()
		if len(*generateCategories) > 0 {
			categories = nil
			for _, raw := range *generateCategories {
				category, err := gatherdata.ParseCategory(raw)
				if err != nil {
					serviceutil.Fatal("bad --category", err)
				}
				categories = append(categories, category)
			}
		}

		outputDir := cfg.OutputDir
		if *generateOutput != "" {
			outputDir = *generateOutput
		}

		if *verbose {
			wowhead.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/wowhead"))
		}

		zones, err := gatherdata.LoadDefaultZoneTable(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load zone table", err)
		}
		catalog, err := gatherdata.LoadDefaultCatalog()
		if err != nil {
			serviceutil.Fatal("failed to load object catalog", err)
		}

		var cache *pagecache.Cache
		if !*generateNoCache {
			cache = openCache(cfg)
		}
		client, err := wowhead.NewClient(wowhead.ClientOptions{
			BaseUrl: cfg.BaseUrl,
			Cache:   cache,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize wowhead client", err)
		}

		generator := gatherdata.Generator{
			Zones:   zones,
			Catalog: catalog,
			Client:  client,
		}

		t1 := time.Now()
		stats, err := generator.GenerateAll(ctx, categories, outputDir)
		t2 := time.Now()
		if err != nil {
			serviceutil.Fatal("generation failed", err)
		}
		slog.Info("generation time", "seconds", t2.Sub(t1).Seconds())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Objects", "No Locations", "Zones", "Entries", "Bumped Keys"})
		for _, s := range stats {
			t.AppendRow(table.Row{s.Category, s.Objects, s.NoLocations, s.Zones, s.Entries, s.Bumps})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
