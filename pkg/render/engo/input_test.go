// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/go-moonstrike/pkg/engine"
)

func TestInputSystem_SamplesButtons(t *testing.T) {
	tests := []struct {
		name    string
		buttons stubButtons
		want    engine.InputState
	}{
		{"idle", stubButtons{}, engine.InputState{}},
		{"thrust", stubButtons{ButtonThrust: {down: true}}, engine.InputState{Forward: true}},
		{"brake", stubButtons{ButtonBrake: {down: true}}, engine.InputState{Backward: true}},
		{
			"turn and fire",
			stubButtons{ButtonTurnLeft: {down: true}, ButtonFire: {down: true}},
			engine.InputState{TurnLeft: true, Fire: true},
		},
		{"turn right", stubButtons{ButtonTurnRight: {down: true}}, engine.InputState{TurnRight: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := NewInputSystem(tt.buttons.source)
			is.Update(1.0 / 60)
			assert.Equal(t, tt.want, is.State())
		})
	}
}

func TestInputSystem_ResetIsConsumedOnce(t *testing.T) {
	buttons := stubButtons{ButtonReset: {justPressed: true}}
	is := NewInputSystem(buttons.source)

	is.Update(1.0 / 60)
	delete(buttons, ButtonReset)
	is.Update(1.0 / 60)

	assert.True(t, is.TakeReset())
	assert.False(t, is.TakeReset())
}
