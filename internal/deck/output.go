package deck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elektrokombinacija/swipedeck/internal/audio"
	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/playback"
	"github.com/elektrokombinacija/swipedeck/internal/tick"
)

// Output is the pair of audio slots the coordinator alternates between.
type Output struct {
	Primary   playback.Source
	Secondary playback.Source
	// Ready closes once the device accepts samples.
	Ready <-chan struct{}

	closers []func() error
}

// OpenOutput creates the slots for the configured driver. The sim driver
// advances on sched and needs no device.
func OpenOutput(sched *tick.Scheduler, cfg config.Audio) (*Output, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sim":
		a, b := audio.NewSim(sched, "primary"), audio.NewSim(sched, "secondary")
		ready := make(chan struct{})
		close(ready)
		return &Output{
			Primary:   a,
			Secondary: b,
			Ready:     ready,
			closers: []func() error{
				func() error { a.Close(); return nil },
				func() error { b.Close(); return nil },
			},
		}, nil
	case "oto":
		ctx, ready, err := audio.NewContext(cfg.SampleRate, cfg.Channels)
		if err != nil {
			return nil, err
		}
		a := audio.NewOto(ctx, cfg.SampleRate, cfg.Channels, "primary")
		b := audio.NewOto(ctx, cfg.SampleRate, cfg.Channels, "secondary")
		return &Output{
			Primary:   a,
			Secondary: b,
			Ready:     ready,
			closers:   []func() error{a.Close, b.Close},
		}, nil
	default:
		return nil, fmt.Errorf("unknown audio driver %q", cfg.Driver)
	}
}

// Wait blocks until the device is ready or ctx is done.
func (o *Output) Wait(ctx context.Context) error {
	select {
	case <-o.Ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for audio device: %w", ctx.Err())
	}
}

// Close releases both slots.
func (o *Output) Close() error {
	var errs []error
	for _, c := range o.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
