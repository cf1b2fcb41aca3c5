package commands

import (
	"os"
	"strings"

	"gathergen/lib/serviceutil"
	"gathergen/services/gatherdata"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(objectsCmd)
}

var objectsCmd = &cobra.Command{
	Use:   "objects <category>",
	Short: "Lists the object catalog for one category.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category, err := gatherdata.ParseCategory(args[0])
		if err != nil {
			serviceutil.Fatal("bad category", err)
		}
		catalog, err := gatherdata.LoadDefaultCatalog()
		if err != nil {
			serviceutil.Fatal("failed to load object catalog", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Gather ID", "Object IDs"})
		for _, object := range catalog[category] {
			t.AppendRow(table.Row{object.Name, object.GatherID, strings.Join(object.ObjectIDs, ", ")})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
