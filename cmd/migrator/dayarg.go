package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

// resolveDayArg resolves the day number a command should act on: the
// --day phrase if given (relative to the migration's started_at), else the
// positional DAY_NUMBER argument at args[1].
func resolveDayArg(ctx context.Context, s *toolsurface.Surface, migrationID string, args []string, phrase string) (int, error) {
	if phrase != "" {
		migration, err := s.Store.GetMigration(ctx, migrationID)
		if err != nil {
			return 0, fmt.Errorf("resolve day phrase: %w", err)
		}
		day, ok := toolsurface.ResolveDayNumber(phrase, migration.StartedAt)
		if !ok {
			return 0, fmt.Errorf("could not resolve day phrase %q to a day 1-7", phrase)
		}
		return day, nil
	}
	if len(args) < 2 {
		return 0, fmt.Errorf("day number is required (positional DAY_NUMBER or --day)")
	}
	day, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("day number must be an integer: %w", err)
	}
	return day, nil
}
