package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update MIGRATION_ID FIELD=VALUE [FIELD=VALUE...]",
	Short: "Update migration-level fields (T3 update_migration_status)",
	Long: `Each FIELD=VALUE pair is applied as one field of the migration record.
Numeric fields (photo_count, video_count, overall_progress,
total_source_storage_gb, google_photos_baseline_gb, google_drive_baseline_gb,
gmail_baseline_gb, family_size) are parsed as numbers; everything else
(phase, family_group_name) is passed through as a string.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID := args[0]
		fields, err := parseFieldArgs(args[1:])
		if err != nil {
			return err
		}

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.UpdateMigrationStatus(cmd.Context(), migrationID, fields)
		_ = recordCall("update_migration_status", migrationID, fields,
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}
		fmt.Println("ok")
		return nil
	},
}

var intFields = map[string]bool{
	"photo_count": true, "video_count": true, "overall_progress": true, "family_size": true,
}

var floatFields = map[string]bool{
	"total_source_storage_gb": true, "google_photos_baseline_gb": true,
	"google_drive_baseline_gb": true, "gmail_baseline_gb": true,
}

func parseFieldArgs(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := splitOnce(pair, '=')
		if !ok {
			return nil, fmt.Errorf("expected FIELD=VALUE, got %q", pair)
		}
		switch {
		case intFields[name]:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%s must be an integer: %w", name, err)
			}
			fields[name] = n
		case floatFields[name]:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number: %w", name, err)
			}
			fields[name] = f
		default:
			fields[name] = value
		}
	}
	return fields, nil
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
