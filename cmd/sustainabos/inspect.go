package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/parser"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/source"
)

func newInspectCmd(a *app) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "inspect [WORKBOOK]",
		Short: "Report sheets, data ranges and column types of a workbook",
		Long: `inspect helps fit the layout configuration to a workbook: it prints the
row and column counts, the detected data range, the print area and the
inferred type of every column of each sheet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := a.cfg.Workbook
			if len(args) == 1 {
				uri = args[0]
			}
			src, err := source.New(cmd.Context(), uri, a.cfg.S3)
			if err != nil {
				return err
			}
			data, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}

			infos, err := parser.Inspect(src.Name(), data)
			if err != nil {
				return fmt.Errorf("inspect failed: %w", err)
			}
			return rf.render(cmd, sheetsView(infos), infos)
		},
	}
	rf.register(cmd)
	return cmd
}

func sheetsView(infos []parser.SheetInfo) models.View {
	view := models.View{
		Columns: []string{"Sheet", "Rows", "Columns", "Data range", "Print area", "Column types"},
		Rows:    make([][]string, 0, len(infos)),
	}
	for _, info := range infos {
		types := ""
		for i, c := range info.Columns {
			if i > 0 {
				types += ", "
			}
			types += c.Name + ":" + c.Type
		}
		view.Rows = append(view.Rows, []string{
			info.Name,
			fmt.Sprint(info.RowCount),
			fmt.Sprint(info.ColumnCount),
			info.DataRange,
			info.PrintArea,
			types,
		})
	}
	return view
}
