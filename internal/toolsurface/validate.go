package toolsurface

import (
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// Validator validates a named argument and returns an error if validation
// fails. Composed via Chain, mirroring the teacher's IssueValidator pattern
// in internal/validation: a chain runs every validator in order and stops at
// the first failure.
type Validator func() error

// Chain composes validators into one, short-circuiting on the first failure.
func Chain(validators ...Validator) error {
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func required(name, value string) Validator {
	return func() error {
		if value == "" {
			return store.NewError(store.ErrInvalidArgument, "%s is required", name)
		}
		return nil
	}
}

func boundedInt(name string, value, min, max int) Validator {
	return func() error {
		if value < min || value > max {
			return store.NewError(store.ErrInvalidArgument, "%s must be in [%d, %d], got %d", name, min, max, value)
		}
		return nil
	}
}

func nonNegative(name string, value float64) Validator {
	return func() error {
		if value < 0 {
			return store.NewError(store.ErrInvalidArgument, "%s must be non-negative, got %v", name, value)
		}
		return nil
	}
}

func oneOf[T comparable](name string, value T, allowed ...T) Validator {
	return func() error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return store.NewError(store.ErrInvalidArgument, "%s has invalid value %v", name, value)
	}
}
