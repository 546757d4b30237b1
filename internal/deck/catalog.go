package deck

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/elektrokombinacija/swipedeck/internal/audio"
	"github.com/elektrokombinacija/swipedeck/internal/config"
	"github.com/elektrokombinacija/swipedeck/internal/core"
	"github.com/elektrokombinacija/swipedeck/internal/cover"
)

// DefaultToneSeconds is the length of a synthesized track with no seconds set.
const DefaultToneSeconds = 30

// LoadCatalog decodes or synthesizes every configured track. Tracks load
// concurrently; the first PCM failure aborts. Artwork that cannot be read is
// logged and the track falls back to the default tint.
func LoadCatalog(cfg *config.Config) (core.Catalog, error) {
	rate, channels := cfg.Audio.SampleRate, cfg.Audio.Channels
	catalog := make(core.Catalog, len(cfg.Tracks))

	var g errgroup.Group
	for i, t := range cfg.Tracks {
		g.Go(func() error {
			track := &core.Track{
				Title:      t.Title,
				Artist:     t.Artist,
				Album:      t.Album,
				Selectable: t.Selectable,
			}
			if t.PCM != "" {
				clip, err := audio.LoadPCM(cfg.Resolve(t.PCM), rate, channels)
				if err != nil {
					return fmt.Errorf("track %d %q: %w", i, t.Title, err)
				}
				track.Clip = clip
			} else {
				secs := t.Seconds
				if secs <= 0 {
					secs = DefaultToneSeconds
				}
				track.Clip = audio.Tone(t.Title, t.Tone, secs, rate, channels)
			}
			if t.Cover != "" {
				img, err := cover.LoadArtwork(cfg.Resolve(t.Cover), cfg.Cover.Size)
				if err != nil {
					log.Warn().Err(err).Str("track", t.Title).Msg("artwork unavailable, using tint")
				} else {
					track.Cover = img
				}
			}
			catalog[i] = track
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}
