package main

import (
	"context"
	"fmt"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/audit"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/collab"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/config"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store/sqlite"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

// openSurface opens the on-disk store at the configured path and wires it
// with the simulated collaborators, the same pairing newTestSurface uses in
// internal/toolsurface's tests, minus the deterministic growth curve (the
// live SimulatedBrowser answers GetDestinationPhotosStorageGB with a single
// fixed value when no curve is set).
func openSurface(ctx context.Context) (*toolsurface.Surface, func(), error) {
	dbPath := config.DBPath()
	openCtx, cancel := context.WithTimeout(ctx, config.LockTimeout())
	defer cancel()
	st, err := sqlite.Open(openCtx, dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open migration store: %w", err)
	}

	s := &toolsurface.Surface{
		Store:               st,
		Browser:             &collab.SimulatedBrowser{},
		Device:              &collab.SimulatedDevice{},
		CollaboratorTimeout: config.CollaboratorTimeout(),
	}
	return s, func() { _ = st.Close() }, nil
}

// recordCall appends a tool-call audit entry and returns any write error.
// The subcommands discard that error: a failed audit write neither fails
// nor undoes a Tool Surface call.
func recordCall(operation, migrationID string, args any, success bool, errKind, message string) error {
	_, err := audit.Append(config.DBPath(), &audit.Entry{
		Actor:       config.Actor(actorFlag),
		Operation:   operation,
		MigrationID: migrationID,
		Args:        args,
		Success:     success,
		Error:       errKind,
		Message:     message,
	})
	return err
}
