package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
	"github.com/elektrokombinacija/swipedeck/internal/vis/observer"
)

// runner drives a deck from text commands at a fixed frame rate.
type runner struct {
	deck   *deck.Deck
	scroll *interact.ScrollView
	rec    *observer.Recorder
	out    io.Writer

	step    float64
	elapsed time.Duration
}

func newRunner(d *deck.Deck, scroll *interact.ScrollView, fps int, out io.Writer) *runner {
	r := &runner{
		deck:   d,
		scroll: scroll,
		rec:    &observer.Recorder{},
		out:    out,
		step:   1 / float64(fps),
	}
	scroll.OnDragBegin = d.Navigator.DragBegin
	scroll.OnDragEnd = d.Navigator.DragEnd
	d.Coordinator.Subscribe(r.rec)
	return r
}

// splitScript splits on newlines and semicolons, dropping blanks and
// # comments.
func splitScript(script string) []string {
	var cmds []string
	for _, line := range strings.Split(script, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, cmd := range strings.Split(line, ";") {
			if cmd = strings.TrimSpace(cmd); cmd != "" {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// Run executes every command of script in order.
func (r *runner) Run(script string) error {
	for _, cmd := range splitScript(script) {
		if err := r.exec(cmd); err != nil {
			return fmt.Errorf("%q: %w", cmd, err)
		}
	}
	return nil
}

func (r *runner) exec(cmd string) error {
	f := strings.Fields(cmd)
	c := r.deck.Coordinator
	switch f[0] {
	case "play":
		c.Play()
	case "pause":
		c.Pause()
	case "toggle":
		c.TogglePlayPause()
	case "next":
		c.Next()
	case "prev":
		c.Previous()
	case "refresh":
		r.deck.Player.ForceRefresh()
	case "skip":
		r.deck.Splash.Skip()
	case "status":
		fmt.Fprintln(r.out, r.status())
	case "select":
		n, err := intArg(f)
		if err != nil {
			return err
		}
		err = c.SelectTrack(n)
		if errors.Is(err, core.ErrReentrant) {
			log.Debug().Int("track", n).Msg("select ignored during track change")
			return nil
		}
		return err
	case "section":
		n, err := intArg(f)
		if err != nil {
			return err
		}
		return r.deck.Navigator.GoToSection(n, true)
	case "seek":
		v, err := floatArg(f)
		if err != nil {
			return err
		}
		return c.Seek(v)
	case "wait":
		v, err := floatArg(f)
		if err != nil {
			return err
		}
		r.wait(v)
	case "swipe":
		v, err := floatArg(f)
		if err != nil {
			return err
		}
		r.swipe(v)
	default:
		return fmt.Errorf("unknown command")
	}
	return nil
}

func intArg(f []string) (int, error) {
	if len(f) != 2 {
		return 0, fmt.Errorf("want one argument")
	}
	return strconv.Atoi(f[1])
}

func floatArg(f []string) (float64, error) {
	if len(f) != 2 {
		return 0, fmt.Errorf("want one argument")
	}
	return strconv.ParseFloat(f[1], 64)
}

func (r *runner) frame() {
	r.deck.Sched.Tick(r.step)
	r.elapsed += time.Duration(r.step * float64(time.Second))
}

func (r *runner) wait(seconds float64) {
	for i := 0; i < int(math.Round(seconds/r.step)); i++ {
		r.frame()
	}
}

// swipe drags from the viewport center by dx pixels over a fifth of a
// second, then lets go.
func (r *runner) swipe(dx float64) {
	const moves = 12
	x := r.scroll.ViewportWidth() / 2
	r.scroll.Press(x, r.elapsed)
	for i := 1; i <= moves; i++ {
		r.frame()
		r.scroll.Move(x+dx*float64(i)/moves, r.elapsed)
	}
	r.scroll.Release(x+dx, r.elapsed)
}

func (r *runner) status() string {
	c := r.deck.Coordinator
	v := r.deck.Player
	title := ""
	if t := c.CurrentTrack(); t != nil {
		title = t.Title
	}
	return fmt.Sprintf("section=%d track=%q playing=%v time=%s/%s cue=%s",
		r.deck.Navigator.Current(), title, c.IsPlaying(), v.CurrentTime, v.TotalTime, v.Cue())
}

// Events returns the recorded notifications.
func (r *runner) Events() []string { return r.rec.Events }
