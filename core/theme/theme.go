// Package theme is the per-visitor light/dark preference.
package theme

import (
	"context"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/state"
)

// StorageNamespace prefixes the persisted theme snapshot of every visitor.
const StorageNamespace = "theme-storage"

type Mode string

// Modes
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func (m Mode) Valid() bool { return m == Light || m == Dark }

type State struct {
	Mode Mode `json:"mode"`
}

type Theme struct {
	store *state.Store[State]
}

func Open(ctx context.Context, kv core.KeyValueStore, visitorID string) (*Theme, error) {
	store, err := state.Open(ctx, kv, core.Namespaced(StorageNamespace, visitorID), State{Mode: Light})
	if err != nil {
		return nil, err
	}
	return &Theme{store: store}, nil
}

// Mode falls back to Light for unknown persisted values.
func (t *Theme) Mode() Mode {
	if m := t.store.Get().Mode; m.Valid() {
		return m
	}
	return Light
}

func (t *Theme) IsDark() bool { return t.Mode() == Dark }

// Class is the class set on the document root element.
func (t *Theme) Class() string {
	if t.IsDark() {
		return "dark"
	}
	return ""
}

// Toggle flips the mode and returns the new one.
func (t *Theme) Toggle(ctx context.Context) (Mode, error) {
	var next Mode
	err := t.store.Update(ctx, func(st State) State {
		if st.Mode == Dark {
			next = Light
		} else {
			next = Dark
		}
		return State{Mode: next}
	})
	if err != nil {
		return t.Mode(), err
	}
	return next, nil
}

func (t *Theme) Set(ctx context.Context, mode Mode) error {
	if !mode.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "mode", Error: "must be one of light dark"})
	}
	return t.store.Set(ctx, State{Mode: mode})
}

func (t *Theme) Subscribe(fn func(State)) (unsubscribe func()) {
	return t.store.Subscribe(fn)
}
