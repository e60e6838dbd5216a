package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadscout/internal/export"
	"github.com/sells-group/leadscout/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <leads.json>",
	Short: "Convert a saved JSON lead list to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read leads file")
		}

		// Accept either a bare array or the run command's {"leads": [...]}
		// envelope.
		var found []model.Lead
		if err := json.Unmarshal(data, &found); err != nil {
			var wrapped struct {
				Leads []model.Lead `json:"leads"`
			}
			if err := json.Unmarshal(data, &wrapped); err != nil {
				return eris.Wrap(err, "parse leads file")
			}
			found = wrapped.Leads
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return eris.Wrap(err, "create output file")
			}
			defer f.Close()
			out = f
		}

		return export.WriteCSV(out, found)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (defaults to stdout)")
	rootCmd.AddCommand(exportCmd)
}
