package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiromon0125/swen746-project/internal/apperr"
	"github.com/hiromon0125/swen746-project/internal/config"
	"github.com/hiromon0125/swen746-project/internal/gateway"
	"github.com/hiromon0125/swen746-project/internal/usecase"
)

var fetchCommitsCmd = &cobra.Command{
	Use:   "fetch-commits",
	Short: "Fetches commits from a repository and saves them to CSV",
	Long: `Fetches commit metadata (sha, author, email, date, message, url) from the
specified GitHub repository and writes it to a CSV file. Requires the
GITHUB_TOKEN environment variable, loaded from a .env file if present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		repo, _ := cmd.Flags().GetString("repo")
		out, _ := cmd.Flags().GetString("out")
		max, _ := cmd.Flags().GetInt("max")

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
		records, err := miner.MineCommits(cmd.Context(), repo, max)
		if err != nil {
			return err
		}
		count, err := usecase.ExportCommits(records, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d commits to %s\n", count, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCommitsCmd)
	fetchCommitsCmd.Flags().String("repo", "", "Repository in owner/name format (required)")
	fetchCommitsCmd.Flags().String("out", "", "Path to the output commits CSV (required)")
	fetchCommitsCmd.Flags().Int("max", -1, "Max number of commits to fetch (negative means all)")
	fetchCommitsCmd.MarkFlagRequired("repo")
	fetchCommitsCmd.MarkFlagRequired("out")
}
