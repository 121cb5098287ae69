package classroom

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/state"
)

// StorageNamespace prefixes the persisted control bar of every visitor.
const StorageNamespace = "classroom-controls"

// Control names
const (
	ControlMuted         = "muted"
	ControlVideoOff      = "videoOff"
	ControlHandRaised    = "handRaised"
	ControlScreenSharing = "screenSharing"
)

// Controls is the visitor's control bar. It only affects the page, never the scene.
type Controls struct {
	Muted         bool `json:"muted"`
	VideoOff      bool `json:"videoOff"`
	HandRaised    bool `json:"handRaised"`
	ScreenSharing bool `json:"screenSharing"`
}

// ToggleInput is bound from a toggle request.
type ToggleInput struct {
	Control string `json:"control" param:"control" validate:"required,oneof=muted videoOff handRaised screenSharing"`
}

func (c Controls) toggle(name string) Controls {
	switch name {
	case ControlMuted:
		c.Muted = !c.Muted
	case ControlVideoOff:
		c.VideoOff = !c.VideoOff
	case ControlHandRaised:
		c.HandRaised = !c.HandRaised
	case ControlScreenSharing:
		c.ScreenSharing = !c.ScreenSharing
	}
	return c
}

type ControlBar struct {
	store *state.Store[Controls]
}

// OpenControls loads the visitor's control bar; a new visitor starts muted.
func OpenControls(ctx context.Context, kv core.KeyValueStore, visitorID string) (*ControlBar, error) {
	store, err := state.Open(ctx, kv, core.Namespaced(StorageNamespace, visitorID), Controls{Muted: true})
	if err != nil {
		return nil, err
	}
	return &ControlBar{store: store}, nil
}

func (b *ControlBar) Get() Controls { return b.store.Get() }

// Toggle flips one control and returns the new bar.
func (b *ControlBar) Toggle(ctx context.Context, validate *validator.Validate, in ToggleInput) (Controls, error) {
	if err := validate.Struct(in); err != nil {
		return b.Get(), core.NewValidationError(err)
	}
	var next Controls
	err := b.store.Update(ctx, func(c Controls) Controls {
		next = c.toggle(in.Control)
		return next
	})
	if err != nil {
		return b.Get(), err
	}
	return next, nil
}
