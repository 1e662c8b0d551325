// Command migrator is a thin terminal front end over the Tool Surface
// (internal/toolsurface), the way the teacher's cmd/bd is a thin front end
// over its own storage layer: each subcommand opens the store, runs exactly
// one Tool Surface operation, and prints the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/config"
)

var actorFlag string

var rootCmd = &cobra.Command{
	Use:   "migrator",
	Short: "Drive an iOS-to-Android family migration through its Tool Surface",
	Long: `migrator is a command-line harness around the migration Tool Surface.

It is the same contract an agent runtime calls programmatically: every
subcommand here maps to exactly one T1-T7 operation, and prints the same
success/error/message shape the Tool Surface returns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "identity recorded against tool-call audit entries (default: config actor, else hostname)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
