// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-moonstrike/pkg/engine"
)

// Button names registered with engo.Input
const (
	ButtonThrust    = "thrust"
	ButtonBrake     = "brake"
	ButtonTurnLeft  = "turnLeft"
	ButtonTurnRight = "turnRight"
	ButtonFire      = "fire"
	ButtonReset     = "reset"
)

// Button is the state of one virtual button
type Button interface {
	Down() bool
	JustPressed() bool
}

// ButtonSource looks a button up by name
type ButtonSource func(name string) Button

// EngoButtons reads buttons from engo's global input manager
func EngoButtons(name string) Button {
	return engo.Input.Button(name)
}

// InputSystem samples the keyboard once per frame into an InputState
type InputSystem struct {
	buttons ButtonSource

	state          engine.InputState
	resetRequested bool
}

// NewInputSystem creates a new input system
func NewInputSystem(buttons ButtonSource) *InputSystem {
	return &InputSystem{buttons: buttons}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the bound buttons
func (is *InputSystem) Update(dt float32) {
	is.state = engine.InputState{
		Forward:   is.buttons(ButtonThrust).Down(),
		Backward:  is.buttons(ButtonBrake).Down(),
		TurnLeft:  is.buttons(ButtonTurnLeft).Down(),
		TurnRight: is.buttons(ButtonTurnRight).Down(),
		Fire:      is.buttons(ButtonFire).Down(),
	}
	if is.buttons(ButtonReset).JustPressed() {
		is.resetRequested = true
	}
}

// State returns the controls sampled on the last update
func (is *InputSystem) State() engine.InputState {
	return is.state
}

// TakeReset reports whether a reset was requested since the last call
func (is *InputSystem) TakeReset() bool {
	requested := is.resetRequested
	is.resetRequested = false
	return requested
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonThrust, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonBrake, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonTurnLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonTurnRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonReset, engo.KeyR)
}
