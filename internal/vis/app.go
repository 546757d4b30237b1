// Package vis implements the Gio window for a deck.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
	"github.com/elektrokombinacija/swipedeck/internal/vis/state"
	"github.com/elektrokombinacija/swipedeck/internal/vis/widgets"
)

// App is the main window application.
type App struct {
	state     *state.State
	theme     *material.Theme
	pager     *widgets.Pager
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	tracklist *widgets.Tracklist
	splash    *widgets.Splash
}

// NewApp creates the window widgets for d. scroll must be the view d's
// navigator pages.
func NewApp(d *deck.Deck, scroll *interact.ScrollView) *App {
	st := state.NewState(d, scroll)
	return &App{
		state:     st,
		theme:     material.NewTheme(),
		pager:     widgets.NewPager(st),
		timeline:  widgets.NewTimeline(d.Player),
		toolbar:   widgets.NewToolbar(st),
		tracklist: widgets.NewTracklist(d.Coordinator),
		splash:    widgets.NewSplash(d.Splash),
	}
}

// Run starts the application event loop. Every frame ticks the deck's
// scheduler, so all animation and playback logic runs on this goroutine.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filters for keyboard input
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			dt := a.state.Frame()
			a.toolbar.Update(dt)
			a.tracklist.Update(dt)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			// tasks like the per-frame time update never finish, so keep
			// frames coming
			w.Invalidate()
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	d := a.state.Deck
	switch e.Name {
	case key.NameSpace:
		d.Coordinator.TogglePlayPause()
	case key.NameLeftArrow:
		d.Navigator.PreviousSection()
	case key.NameRightArrow:
		d.Navigator.NextSection()
	case key.NameEscape:
		d.Splash.Skip()
	case "N":
		d.Coordinator.Next()
	case "P":
		d.Coordinator.Previous()
	case "R":
		d.Player.ForceRefresh()
	case "F":
		a.state.Clock.ToggleFreeze()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.toolbar.Layout(gtx, a.theme)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.pager.Layout(gtx, a.theme)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.tracklist.Layout(gtx, a.theme)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.timeline.Layout(gtx, a.theme)
				}),
			)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return a.splash.Layout(gtx, a.theme)
		}),
	)
}
