// Package deck wires a configured deck together: catalog, playback, cover
// motion, the player view, paged sections and the splash panel. Renderers
// read the resulting element transforms; nothing here draws.
package deck

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/animator"
	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/cover"
	"github.com/elektrokombinacija/swipedeck/internal/nav"
	"github.com/elektrokombinacija/swipedeck/internal/player"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Element is a configured element and the node its intro animates.
type Element struct {
	config.Element
	Node     *core.Element
	Animator *animator.Animator // nil when the element has no intro

	source   *Element
	mirrored string
}

// Display returns what the element shows: the mirrored text, bound player
// text or its own.
func (e *Element) Display(v *player.View) string {
	if e.source != nil {
		return e.mirrored
	}
	if v == nil {
		return e.Element.Text
	}
	switch e.Bind {
	case config.BindTitle:
		return v.Title
	case config.BindArtist:
		return v.Artist
	case config.BindAlbum:
		return v.Album
	case config.BindCurrentTime:
		return v.CurrentTime
	case config.BindTotalTime:
		return v.TotalTime
	}
	return e.Element.Text
}

// Section is one page and its elements. Node carries the paging scale.
type Section struct {
	Name     string
	Player   bool
	Node     *core.Element
	Elements []*Element
}

// Deck is everything a front end needs to render and drive a deck.
type Deck struct {
	Config      *config.Config
	Sched       *tick.Scheduler
	Catalog     core.Catalog
	Coordinator *playback.Coordinator
	CoverNode   *core.Element
	Cover       *cover.Animator
	Player      *player.View
	Navigator   *nav.Navigator
	Sections    []*Section
	Splash      *Splash

	mirrors *tick.Handle
}

// Build validates cfg, loads the catalog and assembles the deck on sched.
// The first section is entered immediately and the splash starts showing.
func Build(sched *tick.Scheduler, cfg *config.Config, scroll nav.Scroller, out *Output) (*Deck, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	d := &Deck{
		Config:    cfg,
		Sched:     sched,
		Catalog:   catalog,
		CoverNode: core.NewElement("cover", core.Identity()),
	}
	d.Cover = cover.New(sched, d.CoverNode, cfg.Cover.Options())

	var primary, secondary playback.Source
	if out != nil {
		primary, secondary = out.Primary, out.Secondary
	}
	d.Coordinator = playback.New(sched, catalog, primary, secondary, d.Cover, cfg.Playback.Options())

	var bound []core.Restartable
	var navSections []*nav.Section
	var playerSections []*nav.Section
	for _, sc := range cfg.Sections {
		s := &Section{
			Name:   sc.Name,
			Player: sc.Player,
			Node:   core.NewElement(sc.Name, core.Identity()),
		}
		ns := &nav.Section{Name: sc.Name, Width: sc.Width, Node: s.Node}
		for _, ec := range sc.Elements {
			e := &Element{Element: ec, Node: core.NewElement(ec.Name, core.Identity())}
			if ec.Animation != nil {
				spec, err := ec.Animation.Spec()
				if err != nil {
					return nil, fmt.Errorf("element %q: %w", ec.Name, err)
				}
				e.Animator = animator.New(sched, e.Node, spec)
				ns.Animators = append(ns.Animators, e.Animator)
				if isTrackBound(ec.Bind) {
					bound = append(bound, e.Animator)
				}
			}
			s.Elements = append(s.Elements, e)
		}
		d.Sections = append(d.Sections, s)
		navSections = append(navSections, ns)
		if sc.Player {
			playerSections = append(playerSections, ns)
		}
	}

	d.Player = player.New(sched, d.Coordinator, bound...)
	for _, ns := range playerSections {
		ns.Player = d.Player
	}
	d.Navigator = nav.New(sched, scroll, navSections, cfg.Navigator.Options(0))
	if d.Splash, err = newSplash(sched, cfg.Splash); err != nil {
		return nil, err
	}
	d.startMirrors()

	log.Info().
		Int("sections", len(d.Sections)).
		Int("tracks", len(catalog)).
		Msg("deck ready")
	return d, nil
}

func isTrackBound(bind string) bool {
	switch bind {
	case config.BindTitle, config.BindArtist, config.BindAlbum,
		config.BindCurrentTime, config.BindTotalTime, config.BindCover:
		return true
	}
	return false
}

// startMirrors links mirror elements to their sources and copies the
// source text every frame.
func (d *Deck) startMirrors() {
	var mirrors []*Element
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			if e.Mirror != "" {
				e.source = d.find(e.Mirror)
				mirrors = append(mirrors, e)
			}
		}
	}
	if len(mirrors) == 0 {
		return
	}
	d.mirrors = d.Sched.Start(tick.Forever(func(float64) {
		for _, e := range mirrors {
			if e.source != nil {
				e.mirrored = e.source.Display(d.Player)
			}
		}
	}))
}

func (d *Deck) find(name string) *Element {
	for i := range d.Sections {
		if e := d.Element(i, name); e != nil {
			return e
		}
	}
	return nil
}

// Element returns the named element of section i, or nil.
func (d *Deck) Element(section int, name string) *Element {
	if section < 0 || section >= len(d.Sections) {
		return nil
	}
	for _, e := range d.Sections[section].Elements {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Close stops every task the deck started.
func (d *Deck) Close() {
	d.mirrors.Cancel()
	d.Splash.Close()
	d.Navigator.Close()
	d.Player.Close()
	d.Coordinator.Close()
	d.Cover.Close()
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			if e.Animator != nil {
				e.Animator.Close()
			}
		}
	}
}
