package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
)

func newTestRunner(t *testing.T) (*runner, *strings.Builder) {
	t.Helper()
	cfg := config.Default()
	cfg.Audio = config.Audio{Driver: "sim", SampleRate: 100, Channels: 1}
	for i := range cfg.Tracks {
		cfg.Tracks[i].Seconds = 4
	}
	sched := tick.NewScheduler()
	scroll := interact.NewScrollView(800)
	sched.Start(tick.Forever(scroll.Step))
	out, err := deck.OpenOutput(sched, cfg.Audio)
	require.NoError(t, err)
	d, err := deck.Build(sched, cfg, scroll, out)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	var buf strings.Builder
	return newRunner(d, scroll, 8, &buf), &buf
}

func TestSplitScript(t *testing.T) {
	cmds := splitScript("play; wait 1\n# comment only\n  next ;; status # trailing\n")
	assert.Equal(t, []string{"play", "wait 1", "next", "status"}, cmds)
	assert.Empty(t, splitScript(" \n;\n"))
}

func TestRunPlayAndNext(t *testing.T) {
	r, buf := newTestRunner(t)
	require.NoError(t, r.Run("play; wait 1; next; wait 1; status"))

	assert.Equal(t, []string{"playing", "change 0->1", "playing", "track Fifth Above"}, r.Events())
	assert.Equal(t, 1, r.deck.Coordinator.CurrentIndex())
	assert.Contains(t, buf.String(), `track="Fifth Above" playing=true`)
}

func TestRunSelectErrors(t *testing.T) {
	r, _ := newTestRunner(t)

	err := r.Run("select 9")
	assert.ErrorIs(t, err, core.ErrInvalidIndex)
	assert.Contains(t, err.Error(), `"select 9"`)

	assert.Error(t, r.Run("select"))
	assert.Error(t, r.Run("seek half"))
}

func TestRunSelectDuringChangeIgnored(t *testing.T) {
	r, buf := newTestRunner(t)
	require.NoError(t, r.Run("next; select 2; wait 1; status"))

	assert.Equal(t, 1, r.deck.Coordinator.CurrentIndex())
	assert.Contains(t, buf.String(), `track="Fifth Above"`)
}

func TestRunUnknownCommand(t *testing.T) {
	r, _ := newTestRunner(t)
	assert.EqualError(t, r.Run("status; dance"), `"dance": unknown command`)
}

func TestRunSwipePagesForward(t *testing.T) {
	r, buf := newTestRunner(t)
	require.NoError(t, r.Run("swipe -300; wait 3; status"))

	assert.Equal(t, 1, r.deck.Navigator.Current())
	assert.InDelta(t, 0.5, r.scroll.Offset(), 0.01)
	assert.True(t, strings.HasPrefix(buf.String(), "section=1 "))
}

func TestRunSectionAndSeek(t *testing.T) {
	r, _ := newTestRunner(t)
	require.NoError(t, r.Run("section 2; wait 2; seek 0.5; wait 0.25"))

	assert.Equal(t, 2, r.deck.Navigator.Current())
	assert.InDelta(t, 0.5, r.deck.Coordinator.Progress(), 0.05)
}
