package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/config"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report MIGRATION_ID",
	Short: "Generate the final migration report (T7 generate_migration_report)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID := args[0]
		if !cmd.Flags().Changed("format") {
			reportFormat = config.ReportFormat()
		}
		format := toolsurface.ReportFormat(reportFormat)

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.GenerateMigrationReport(cmd.Context(), migrationID, format)
		_ = recordCall("generate_migration_report", migrationID, map[string]any{"format": format},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}

		if format == toolsurface.ReportMarkdown {
			rendered, err := glamour.Render(res.Report, "dark")
			if err != nil {
				// Glamour is a terminal nicety; fall back to the raw markdown
				// rather than failing a report that already succeeded.
				fmt.Println(res.Report)
				return nil
			}
			fmt.Print(rendered)
			return nil
		}

		fmt.Println(res.Report)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "report format: markdown or toml")
	rootCmd.AddCommand(reportCmd)
}
