package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/models"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/output"
)

// renderFlags are the output flags shared by the query commands.
type renderFlags struct {
	format     string
	pretty     bool
	outputPath string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "table", "Output format: table, json, toon, html")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
}

// render writes view in the selected format. For json, raw is serialized
// instead of the view when non-nil.
func (f *renderFlags) render(cmd *cobra.Command, view models.View, raw any) error {
	if raw == nil {
		raw = view
	}

	var data []byte
	switch f.format {
	case "table", "markdown", "md":
		data = []byte(output.Markdown(view))
	case "json":
		b, err := output.ToJSON(raw, f.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = append(b, '\n')
	case "toon":
		s, err := output.ToTOON(view)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = []byte(s + "\n")
	case "html":
		s, err := output.HTMLTable(view)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		data = []byte(s + "\n")
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, toon, or html)", f.format)
	}

	return writeOutput(cmd.OutOrStdout(), f.outputPath, data)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
