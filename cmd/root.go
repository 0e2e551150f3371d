// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiromon0125/swen746-project/internal/apperr"
)

var rootCmd = &cobra.Command{
	Use:   "repominer",
	Short: "A CLI tool to mine GitHub commit and issue metadata.",
	Long: `repominer fetches commit and issue metadata from the GitHub API,
normalizes the records into a fixed tabular schema, exports them as CSV
files, and computes aggregate summaries over previously exported files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Each error category maps to its own exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperr.ExitCodeOf(err))
	}
}

// newLogger builds the command's progress logger from the persistent verbose
// flag. By default all logs are discarded.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose, _ := cmd.InheritedFlags().GetBool("verbose"); verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	return logger
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
