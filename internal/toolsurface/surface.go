// Package toolsurface implements the Tool Surface (C3 in spec.md §4.3): the
// seven named operations an external agent runtime calls, each validating
// its arguments, never raising across the boundary, and returning a
// JSON-serializable record with a {success, error, message} envelope.
//
// Grounded on the teacher's cmd/bd command layer: thin functions that
// validate input via internal/validation, call into the storage layer, and
// translate storage errors into a small, closed set of user-facing outcomes
// — generalized here from CLI exit codes to the record-based contract
// spec.md §7 requires.
package toolsurface

import (
	"time"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/collab"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// Surface wires the state store (C1) to the two collaborators (C4, C5) and
// exposes the seven tool operations.
type Surface struct {
	Store   store.Store
	Browser collab.Browser
	Device  collab.Device

	// CollaboratorTimeout bounds every C4 call, per spec.md §5 ("bounded by
	// a 60-second collaborator timeout"). Defaults to 60s if zero.
	CollaboratorTimeout time.Duration
}

func (s *Surface) timeout() time.Duration {
	if s.CollaboratorTimeout > 0 {
		return s.CollaboratorTimeout
	}
	return 60 * time.Second
}

// Status is embedded in every operation's response, matching the
// {success, error, message} envelope spec.md §7 mandates.
type Status struct {
	Success bool         `json:"success"`
	Error   store.ErrKind `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

func ok() Status { return Status{Success: true} }

func fail(err error) Status {
	kind := store.KindOf(err)
	return Status{Success: false, Error: kind, Message: err.Error()}
}

// asStoreError wraps a non-taxonomized error into the unknown bucket so
// every returned Status always carries a populated Error field on failure.
func asStoreError(err error) error {
	if err == nil {
		return nil
	}
	if store.KindOf(err) != store.ErrUnknown {
		return err
	}
	if _, ok := err.(*store.Error); ok {
		return err
	}
	return store.NewError(store.ErrUnknown, "%s", err.Error())
}

func collaboratorError(err error) error {
	return store.NewError(store.ErrCollaboratorUnavailable, "%s", err.Error())
}
