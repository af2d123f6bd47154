// cmd/moonterm/keys.go
package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-moonstrike/pkg/engine"
)

// Terminals report key presses and auto-repeats but never releases, so a
// control stays held for keyHold after its last press.
const keyHold = 500 * time.Millisecond

type control int

const (
	controlForward control = iota
	controlBackward
	controlLeft
	controlRight
	controlCount
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionReset
)

type keyLatch struct {
	held [controlCount]time.Time
	fire bool
}

func newKeyLatch() *keyLatch {
	return &keyLatch{}
}

// Press records a key event and returns any session-level action
func (k *keyLatch) Press(ev *tcell.EventKey, now time.Time) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		k.hold(controlForward, now)
	case tcell.KeyDown:
		k.hold(controlBackward, now)
	case tcell.KeyLeft:
		k.hold(controlLeft, now)
	case tcell.KeyRight:
		k.hold(controlRight, now)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			k.hold(controlForward, now)
		case 's', 'S':
			k.hold(controlBackward, now)
		case 'a', 'A':
			k.hold(controlLeft, now)
		case 'd', 'D':
			k.hold(controlRight, now)
		case ' ':
			k.fire = true
		case 'r', 'R':
			k.release()
			return actionReset
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

func (k *keyLatch) hold(c control, now time.Time) {
	k.held[c] = now.Add(keyHold)
	// Opposite controls cancel each other
	switch c {
	case controlForward:
		k.held[controlBackward] = time.Time{}
	case controlBackward:
		k.held[controlForward] = time.Time{}
	case controlLeft:
		k.held[controlRight] = time.Time{}
	case controlRight:
		k.held[controlLeft] = time.Time{}
	}
}

func (k *keyLatch) release() {
	k.held = [controlCount]time.Time{}
	k.fire = false
}

// State returns the controls held at now. A fire press is consumed by the
// first call after it.
func (k *keyLatch) State(now time.Time) engine.InputState {
	input := engine.InputState{
		Forward:   now.Before(k.held[controlForward]),
		Backward:  now.Before(k.held[controlBackward]),
		TurnLeft:  now.Before(k.held[controlLeft]),
		TurnRight: now.Before(k.held[controlRight]),
		Fire:      k.fire,
	}
	k.fire = false
	return input
}
