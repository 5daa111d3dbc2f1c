// Package cli contains the pressclip command tree.
package cli

import (
	"github.com/spf13/cobra"

	cfgpkg "github.com/local/pressclip/internal/config"
	logpkg "github.com/local/pressclip/internal/logger"
)

var (
	cfg     cfgpkg.Config
	version = "dev"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pressclip",
	Short: "Extract editorial and opinion pages from newspaper PDFs",
	Long: `pressclip scans a newspaper PDF, classifies every page as editorial,
opinion or other using a remote language model with a local keyword fallback,
and writes a consolidated PDF containing only the matching pages, in their
original order.

Example usage:
  pressclip run --input paper.pdf --output editorials.pdf
  pressclip run --input s3://bucket/scan.pdf --output out.pdf --simple`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = cfgpkg.FromEnv()
		return logpkg.Init(logpkg.Options{
			Level:        cfg.Logging.Level,
			Pretty:       cfg.Logging.Pretty,
			File:         cfg.Logging.File,
			MaxSizeMB:    cfg.Logging.MaxSizeMB,
			MaxBackups:   cfg.Logging.MaxBackups,
			MaxAgeDays:   cfg.Logging.MaxAgeDays,
			Compress:     cfg.Logging.Compress,
			SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
			AxiomAPIKey:  cfg.Axiom.APIKey,
			AxiomOrgID:   cfg.Axiom.OrgID,
			AxiomDataset: cfg.Axiom.Dataset,
			AxiomFlush:   cfg.Axiom.FlushInterval,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logpkg.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}
