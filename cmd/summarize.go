package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiromon0125/swen746-project/internal/usecase"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarizes previously exported issue and commit files",
	Long: `Reads a pair of previously exported CSV files and prints aggregate
statistics (total counts, issues grouped by state, commits grouped by
author) as JSON. Works entirely offline and needs no credentials.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		issuesPath, _ := cmd.Flags().GetString("issues")
		commitsPath, _ := cmd.Flags().GetString("commits")

		summarizer := usecase.NewSummarizer(logger)
		report, err := summarizer.Summarize(issuesPath, commitsPath)
		if err != nil {
			return err
		}
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().String("issues", "", "Path to the issues CSV (required)")
	summarizeCmd.Flags().String("commits", "", "Path to the commits CSV (required)")
	summarizeCmd.MarkFlagRequired("issues")
	summarizeCmd.MarkFlagRequired("commits")
}
