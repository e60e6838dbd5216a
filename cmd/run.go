package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadscout/internal/export"
	"github.com/sells-group/leadscout/internal/leads"
	"github.com/sells-group/leadscout/internal/model"
)

var (
	runPrompt      string
	runJDFile      string
	runJD          string
	runSource      string
	runLimit       int
	runLocation    string
	runIndustry    string
	runCompanySize string
	runFormat      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lead discovery once and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jd := runJD
		if runJDFile != "" {
			data, err := os.ReadFile(runJDFile)
			if err != nil {
				return eris.Wrap(err, "read job description file")
			}
			jd = string(data)
		}

		req := model.Request{
			Prompt:         runPrompt,
			JobDescription: jd,
			Limit:          runLimit,
			Location:       runLocation,
			Industry:       runIndustry,
			CompanySize:    runCompanySize,
		}
		if req.Prompt == "" {
			return eris.New("--prompt is required")
		}
		if req.JobDescription == "" {
			return eris.New("--job-description or --job-description-file is required")
		}

		st, err := initStore(ctx, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		var orch *leads.Orchestrator
		switch runSource {
		case "llm":
			orch, err = newLLMOrchestrator(cfg, st)
		case "discover":
			orch, err = newDiscoverOrchestrator(cfg, st)
		default:
			return eris.Errorf("unknown source %q (want llm or discover)", runSource)
		}
		if err != nil {
			return err
		}

		found, err := orch.Run(ctx, req)
		if err != nil {
			return err
		}

		switch runFormat {
		case "csv":
			return export.WriteCSV(os.Stdout, found)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(map[string]any{"leads": found}), "encode output")
		default:
			return eris.Errorf("unknown format %q (want json or csv)", runFormat)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&runPrompt, "prompt", "", "search prompt (required)")
	runCmd.Flags().StringVar(&runJD, "job-description", "", "job description text")
	runCmd.Flags().StringVar(&runJDFile, "job-description-file", "", "path to job description file")
	runCmd.Flags().StringVar(&runSource, "source", "llm", "lead source strategy: llm or discover")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "max leads to return (10-500, default 200)")
	runCmd.Flags().StringVar(&runLocation, "location", "", "geographic focus")
	runCmd.Flags().StringVar(&runIndustry, "industry", "", "industry focus")
	runCmd.Flags().StringVar(&runCompanySize, "company-size", "", "company size focus")
	runCmd.Flags().StringVar(&runFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(runCmd)
}
