// zkapp applies zkapp commands to a ledger snapshot and reports why they
// were accepted or rejected.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/colorfulnotion/zkapp/log"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		modules  string
	)
	rootCmd := &cobra.Command{
		Use:           "zkapp",
		Short:         "Validate and apply zkapp commands",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.InitLogger(logLevel); err != nil {
				return err
			}
			for _, m := range strings.Split(modules, ",") {
				if m = strings.TrimSpace(m); m != "" {
					log.EnableModule(m)
				}
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, crit)")
	rootCmd.PersistentFlags().StringVar(&modules, "debug", "", "comma separated log modules to enable, e.g. stf_mod,ctx_mod")

	rootCmd.AddCommand(newApplyCmd(), newCommitmentCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
