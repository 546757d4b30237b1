// Command swipedeckvis opens a deck in a Gio window.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
	"github.com/elektrokombinacija/swipedeck/internal/vis"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
	"github.com/elektrokombinacija/swipedeck/internal/vis/observer"
)

func main() {
	var (
		configPath = flag.String("config", "", "deck YAML; empty uses the built-in demo deck")
		driver     = flag.String("driver", "", "override audio driver: oto | sim")
		level      = flag.String("log-level", "info", "log level")
		jsonLogs   = flag.Bool("log-json", false, "log JSON instead of console text")
	)
	flag.Parse()

	if !*jsonLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", *level).Msg("unknown log level, using info")
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = c
	}
	if *driver != "" {
		cfg.Audio.Driver = *driver
	}

	sched := tick.NewScheduler()
	scroll := interact.NewScrollView(float64(cfg.Window.Width))
	sched.Start(tick.Forever(scroll.Step))

	out, err := deck.OpenOutput(sched, cfg.Audio)
	if err != nil {
		log.Fatal().Err(err).Msg("open audio")
	}

	// The device warms up while the catalog decodes.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var d *deck.Deck
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return out.Wait(ctx) })
	g.Go(func() error {
		var err error
		d, err = deck.Build(sched, cfg, scroll, out)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("start deck")
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title(cfg.Window.Title),
			app.Size(unit.Dp(float32(cfg.Window.Width)), unit.Dp(float32(cfg.Window.Height))),
		)
		d.Coordinator.Subscribe(observer.NewLogger(log.Logger))
		d.Coordinator.Subscribe(observer.NewRedraw(window.Invalidate))

		application := vis.NewApp(d, scroll)
		if err := application.Run(window); err != nil {
			log.Fatal().Err(err).Msg("window")
		}
		d.Close()
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msg("close audio")
		}
		os.Exit(0)
	}()
	app.Main()
}
