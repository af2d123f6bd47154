// cmd/moonterm/main_test.go
package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-moonstrike/pkg/config"
	"github.com/opd-ai/go-moonstrike/pkg/engine"
	"github.com/opd-ai/go-moonstrike/pkg/logging"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	cfg := config.DefaultConfig()
	cfg.Seed = "moonterm-test"
	game, err := engine.NewGame(cfg, nil)
	require.NoError(t, err)

	return newApp(screen, game, logging.NewDiscardLogger()), screen
}

func TestApp_StepAdvancesAndDraws(t *testing.T) {
	a, screen := newTestApp(t)

	assert.True(t, a.handleEvent(runeKey('w')))
	a.step()

	assert.Equal(t, uint64(1), a.game.CurrentTick)

	var row strings.Builder
	for x := 0; x < 80; x++ {
		ch, _, _, _ := screen.GetContent(x, 24)
		row.WriteRune(ch)
	}
	assert.Contains(t, row.String(), "life [+++]")
}

func TestApp_QuitAndReset(t *testing.T) {
	a, _ := newTestApp(t)
	a.game.GameOver = true

	assert.True(t, a.handleEvent(runeKey('r')))
	assert.False(t, a.game.GameOver)

	assert.False(t, a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestPollEvents_StopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	events := make(chan tcell.Event)
	done := make(chan struct{})
	require.NoError(t, screen.PostEvent(runeKey('w')))

	finished := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(finished)
	}()

	// Nobody drains events; closing done must still release the reader
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("event reader still blocked after done was closed")
	}
}

func TestPollEvents_ForwardsEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	require.NoError(t, screen.PostEvent(runeKey('r')))

	select {
	case ev := <-events:
		key, ok := ev.(*tcell.EventKey)
		require.True(t, ok)
		assert.Equal(t, 'r', key.Rune())
	case <-time.After(2 * time.Second):
		t.Fatal("no event forwarded")
	}
}
