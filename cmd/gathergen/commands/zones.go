package commands

import (
	"os"
	"sort"
	"strconv"

	"gathergen/lib/serviceutil"
	"gathergen/services/gatherdata"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(zonesCmd)
}

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Lists the zone table the generator maps scraped zone ids with.",
	Run: func(cmd *cobra.Command, args []string) {
		zones, err := gatherdata.LoadDefaultZoneTable(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to load zone table", err)
		}

		all := zones.All()
		externalIDs := make([]string, 0, len(all))
		for externalID := range all {
			externalIDs = append(externalIDs, externalID)
		}
		sort.Slice(externalIDs, func(i, j int) bool {
			a, _ := strconv.Atoi(externalIDs[i])
			b, _ := strconv.Atoi(externalIDs[j])
			return a < b
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"External ID", "Name", "UiMap ID"})
		for _, externalID := range externalIDs {
			zone := all[externalID]
			t.AppendRow(table.Row{externalID, zone.Name, zone.ID})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
