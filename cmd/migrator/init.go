package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init USER_NAME YEARS_ON_SOURCE",
	Short: "Initialize a new migration (T1 initialize_migration)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userName := args[0]
		var years int
		if _, err := fmt.Sscanf(args[1], "%d", &years); err != nil {
			return fmt.Errorf("years_on_source must be an integer: %w", err)
		}

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.InitializeMigration(cmd.Context(), userName, years)
		_ = recordCall("initialize_migration", res.MigrationID,
			map[string]any{"user_name": userName, "years_on_source": years},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}
		fmt.Printf("migration %s created for %s\n", res.MigrationID, userName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
