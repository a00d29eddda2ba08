package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/straja-ai/agegate/internal/evaluation"
)

func newEvalCmd(root *rootOptions) *cobra.Command {
	var (
		labelsPath  string
		datasetPath string
		workers     int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score classifier predictions against ground-truth labels",
		Long: `eval prints a confusion matrix and classification report.

With --labels it reads a CSV of existing predictions ("Actual Label" and
"Predicted Label" columns). With --dataset it runs the pipeline over a JSONL
file of labelled inputs ({"label": "Safe"|"Restricted", "input": {...}}).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (labelsPath == "") == (datasetPath == "") {
				return errors.New("exactly one of --labels or --dataset is required")
			}

			var pairs []evaluation.Pair
			if labelsPath != "" {
				f, err := os.Open(labelsPath)
				if err != nil {
					return fmt.Errorf("open labels: %w", err)
				}
				defer f.Close()
				pairs, err = evaluation.LoadLabelsCSV(f)
				if err != nil {
					return err
				}
			} else {
				f, err := os.Open(datasetPath)
				if err != nil {
					return fmt.Errorf("open dataset: %w", err)
				}
				defer f.Close()
				cases, err := evaluation.DecodeCases(f)
				if err != nil {
					return err
				}

				rt, err := root.load(cmd.Context())
				if err != nil {
					return err
				}
				defer rt.close()

				rt.log.Info().Int("cases", len(cases)).Int("workers", workers).Msg("running dataset")
				pairs, err = evaluation.RunDataset(cmd.Context(), rt.analyzer, cases, workers)
				if err != nil {
					return err
				}
			}

			m := evaluation.Compute(pairs)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			return m.Report(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&labelsPath, "labels", "", "CSV file with Actual Label and Predicted Label columns")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "JSONL file of labelled inputs to run through the pipeline")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent analyses for --dataset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metrics as JSON")
	return cmd
}
