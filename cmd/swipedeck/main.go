// Command swipedeck runs a deck without a window, driven by a command script,
// and prints the playback notifications it produced.
//
// Commands, separated by newlines or semicolons:
//
//	play | pause | toggle | next | prev | refresh | skip | status
//	select N     switch to track N
//	section N    page to section N
//	seek X       seek to X in [0,1]
//	wait S       advance S seconds
//	swipe DX     drag DX pixels from the viewport center
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/deck"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
	"github.com/elektrokombinacija/swipedeck/internal/vis/interact"
)

const demoScript = `
skip; wait 0.5
section 1; wait 0.5
play; wait 2; status
next; wait 1; status
swipe -300; wait 1; status
select 0; wait 0.5
seek 0.5; wait 0.5; status
pause; wait 0.5; status
`

func main() {
	var (
		configPath = flag.String("config", "", "deck YAML; empty uses the built-in demo deck")
		driver     = flag.String("driver", "sim", "audio driver: sim | oto")
		script     = flag.String("script", "", "commands to run; empty runs a short demo")
		scriptFile = flag.String("script-file", "", "read commands from a file")
		fps        = flag.Int("fps", 60, "simulated frames per second")
		level      = flag.String("log-level", "warn", "log level")
		logJSON    = flag.Bool("log-json", false, "log JSON instead of console text")
	)
	flag.Parse()

	if !*logJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if *fps <= 0 {
		log.Fatal().Int("fps", *fps).Msg("fps must be positive")
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = c
	}
	cfg.Audio.Driver = *driver

	sched := tick.NewScheduler()
	scroll := interact.NewScrollView(float64(cfg.Window.Width))
	sched.Start(tick.Forever(scroll.Step))
	out, err := deck.OpenOutput(sched, cfg.Audio)
	if err != nil {
		log.Fatal().Err(err).Msg("open audio")
	}

	commands := *script
	var d *deck.Deck
	var g errgroup.Group
	g.Go(func() error {
		if *scriptFile == "" {
			return nil
		}
		b, err := os.ReadFile(*scriptFile)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		commands = string(b)
		return nil
	})
	g.Go(func() error {
		var err error
		d, err = deck.Build(sched, cfg, scroll, out)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("start")
	}
	if commands == "" {
		commands = demoScript
	}

	r := newRunner(d, scroll, *fps, os.Stdout)
	runErr := r.Run(commands)
	for _, ev := range r.Events() {
		fmt.Println(ev)
	}
	d.Close()
	if err := out.Close(); err != nil {
		log.Warn().Err(err).Msg("close audio")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("script failed")
	}
}
