package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/straja-ai/agegate/internal/analysis"
	"github.com/straja-ai/agegate/internal/transcript"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		exportPath string
		topicCount int
	)
	cmd := &cobra.Command{
		Use:   "analyze <input.json>",
		Short: "Analyze one video from a JSON input file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			if topicCount < 0 {
				return fmt.Errorf("--topics must not be negative")
			}
			if topicCount > 0 {
				in.TopicCount = topicCount
			}

			if exportPath != "" {
				if err := exportTranscript(exportPath, in.Transcript); err != nil {
					return err
				}
			}

			rt, err := root.load(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			rep := rt.analyzer.Analyze(cmd.Context(), in)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
	cmd.Flags().StringVar(&exportPath, "export-transcript", "", "write the transcript as [MM:SS] text blocks to this path")
	cmd.Flags().IntVar(&topicCount, "topics", 0, "number of key topics to extract (default from config)")
	return cmd
}

func readInput(path string) (analysis.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var in analysis.Input
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return analysis.Input{}, fmt.Errorf("decode input %s: %w", path, err)
	}
	if in.Metadata.VideoID == "" {
		return analysis.Input{}, fmt.Errorf("input %s: metadata.video_id is required", path)
	}
	return in, nil
}

func exportTranscript(path string, segs []transcript.Segment) error {
	if len(segs) == 0 {
		return fmt.Errorf("no transcript to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript export: %w", err)
	}
	if err := transcript.Export(f, segs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
