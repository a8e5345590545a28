package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/output"
)

func newExportCmd(a *app) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tracker rows as an Arrow IPC stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}

			var buf bytes.Buffer
			if err := output.WriteArrow(&buf, store.Snapshot().Tracker); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outputPath, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}
