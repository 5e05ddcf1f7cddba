package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/meridian-group/intake-cli/internal/confidence"
	"github.com/meridian-group/intake-cli/internal/fieldlib"
)

var (
	scoreTemplateFile string
	scoreFormat       string
)

var scoreCmd = &cobra.Command{
	Use:   "score FILE.json",
	Short: "Compute ensemble confidence for an extracted payload",
	Long:  "Reads a JSON payload of extracted fields (flat, or nested under extracted_fields or customer_info/policy_info) and prints the ensemble confidence report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read payload")
		}

		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			return eris.Wrap(err, "parse payload")
		}

		var tmpl *confidence.TemplateClassification
		if scoreTemplateFile != "" {
			raw, err := os.ReadFile(scoreTemplateFile)
			if err != nil {
				return eris.Wrap(err, "read template classification")
			}
			tmpl = &confidence.TemplateClassification{}
			if err := json.Unmarshal(raw, tmpl); err != nil {
				return eris.Wrap(err, "parse template classification")
			}
		}

		scorer := confidence.NewScorer(fieldlib.Default())
		report := scorer.Score(confidence.FromJSON(payload), tmpl, nil)

		return printResponse(report, scoreFormat)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreTemplateFile, "template", "", "JSON file with the upstream template classification")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(scoreCmd)
}
