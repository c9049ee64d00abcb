package driver

import (
	cfg "github.com/automoto/tilequest/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// KeySource reads the configured keyboard and gamepad bindings from ebiten.
// The left analog stick also drives the two move actions.
type KeySource struct {
	gamepadIDs []ebiten.GamepadID
	polled     bool
	left       bool
	right      bool
}

func NewKeySource() *KeySource {
	ebiten.SetWindowClosingHandled(true)
	return &KeySource{}
}

func (k *KeySource) Pressed(id cfg.ActionID) bool {
	if !k.polled {
		k.pollGamepads()
	}

	binding := cfg.Input.Bindings[id]
	for _, key := range binding.Keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	for _, gpID := range k.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				return true
			}
		}
	}

	switch id {
	case cfg.ActionMoveLeft:
		return k.left
	case cfg.ActionMoveRight:
		return k.right
	}
	return false
}

// CloseRequested ends the poll; the next Pressed call reads the gamepads again
func (k *KeySource) CloseRequested() bool {
	k.polled = false
	return ebiten.IsWindowBeingClosed()
}

// pollGamepads refreshes the connected pads and the left stick state
func (k *KeySource) pollGamepads() {
	k.polled = true
	k.gamepadIDs = ebiten.AppendGamepadIDs(k.gamepadIDs[:0])
	k.left, k.right = false, false

	deadzone := cfg.Input.AnalogDeadzone
	for _, gpID := range k.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if horizontal < -deadzone {
			k.left = true
		}
		if horizontal > deadzone {
			k.right = true
		}
	}
}
