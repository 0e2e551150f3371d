package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/config"
	"github.com/hiromon0125/swen746-project/internal/gateway"
	"github.com/hiromon0125/swen746-project/internal/usecase"
)

var fetchIssuesCmd = &cobra.Command{
	Use:   "fetch-issues",
	Short: "Fetches issues from a repository and saves them to CSV",
	Long: `Fetches issue metadata from the specified GitHub repository and writes it
to a CSV file. Pull requests are excluded. Requires the GITHUB_TOKEN
environment variable, loaded from a .env file if present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		repo, _ := cmd.Flags().GetString("repo")
		out, _ := cmd.Flags().GetString("out")
		state, _ := cmd.Flags().GetString("state")
		max, _ := cmd.Flags().GetInt("max")

		if state != "all" && state != "open" && state != "closed" {
			return fmt.Errorf("invalid --state %q: must be all, open or closed", state)
		}

		cfg, err := config.NewLoader().Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.GithubToken == "" {
			return apperr.New(apperr.ErrAuthentication, "GITHUB_TOKEN is not set")
		}

		fetcher, err := gateway.NewGitHubGateway(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		miner := usecase.NewMiner(fetcher, logger)
		records, err := miner.MineIssues(cmd.Context(), repo, state, max)
		if err != nil {
			return err
		}
		count, err := usecase.ExportIssues(records, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d issues to %s\n", count, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchIssuesCmd)
	fetchIssuesCmd.Flags().String("repo", "", "Repository in owner/name format (required)")
	fetchIssuesCmd.Flags().String("out", "", "Path to the output issues CSV (required)")
	fetchIssuesCmd.Flags().String("state", "all", "Issue state filter: all, open or closed")
	fetchIssuesCmd.Flags().Int("max", -1, "Max number of issues to fetch (negative means all)")
	fetchIssuesCmd.MarkFlagRequired("repo")
	fetchIssuesCmd.MarkFlagRequired("out")
}
