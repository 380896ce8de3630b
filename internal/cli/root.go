// Package cli implements the recordcheck command line.
package cli

import (
	"context"
	"flag"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "recordcheck",
	Short: "Read survey record documents and report what could not be read",
	Long: `recordcheck reads survey record XML documents against a survey
definition, reporting skipped structure, unreadable field values and
failures for each document.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	// glog flags (-v, -logtostderr, ...)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
