package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusDayPhrase string

var statusCmd = &cobra.Command{
	Use:   "status MIGRATION_ID [DAY_NUMBER]",
	Short: "Get the composite migration status for a day (T5 get_migration_status)",
	Long: `DAY_NUMBER is 1-7. Instead of a number, --day accepts a free-text
phrase such as "day three" or "tomorrow", resolved relative to the
migration's start date.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID := args[0]

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		day, err := resolveDayArg(cmd.Context(), s, migrationID, args, statusDayPhrase)
		if err != nil {
			return err
		}

		res := s.GetMigrationStatus(cmd.Context(), migrationID, day)
		_ = recordCall("get_migration_status", migrationID, map[string]any{"day_number": day},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDayPhrase, "day", "", `free-text day reference, e.g. "day three" (overrides the positional DAY_NUMBER)`)
	rootCmd.AddCommand(statusCmd)
}
