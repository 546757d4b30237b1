package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elektrokombinacija/swipedeck/internal/core"
)

// NewContext opens the shared output device. Only one context may exist per
// process; the returned channel closes once the device is ready.
func NewContext(sampleRate, channels int) (*oto.Context, <-chan struct{}, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio device: %w", err)
	}
	return ctx, ready, nil
}

// clipReader feeds PCM to oto's mixer goroutine and remembers how far it got.
type clipReader struct {
	mu   sync.Mutex
	data []byte
	off  int64
}

func (r *clipReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += int64(n)
	return n, nil
}

func (r *clipReader) Seek(offset int64, whence int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.off + offset
	case io.SeekEnd:
		abs = int64(len(r.data)) + offset
	default:
		return 0, fmt.Errorf("clip reader: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("clip reader: negative position %d", abs)
	}
	if abs > int64(len(r.data)) {
		abs = int64(len(r.data))
	}
	r.off = abs
	return abs, nil
}

func (r *clipReader) offset() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.off
}

// Oto is a slot playing through a shared oto context.
type Oto struct {
	ctx        *oto.Context
	sampleRate int
	channels   int

	clip   *core.Clip
	reader *clipReader
	player oto.Player
	volume float64

	log zerolog.Logger
}

// NewOto creates a slot on ctx. Clips must match the context format.
func NewOto(ctx *oto.Context, sampleRate, channels int, name string) *Oto {
	return &Oto{
		ctx:        ctx,
		sampleRate: sampleRate,
		channels:   channels,
		volume:     1,
		log:        log.With().Str("component", "audio").Str("slot", name).Logger(),
	}
}

func (o *Oto) Load(clip *core.Clip) {
	o.closePlayer()
	o.clip = clip
	if clip == nil {
		return
	}
	if clip.SampleRate != o.sampleRate || clip.Channels != o.channels {
		o.log.Warn().
			Str("clip", clip.Name).
			Int("rate", clip.SampleRate).
			Int("channels", clip.Channels).
			Msg("clip format differs from device, playback speed will be off")
	}
	o.reader = &clipReader{data: clip.PCM}
	o.player = o.ctx.NewPlayer(o.reader)
	o.player.SetVolume(o.volume)
}

func (o *Oto) Clip() *core.Clip { return o.clip }

func (o *Oto) Play() {
	if o.player == nil {
		return
	}
	if o.reader.offset() >= int64(len(o.clip.PCM)) && !o.player.IsPlaying() {
		o.seek(0)
	}
	o.player.Play()
}

func (o *Oto) Pause() {
	if o.player != nil {
		o.player.Pause()
	}
}

func (o *Oto) Stop() {
	if o.player == nil {
		return
	}
	o.player.Pause()
	o.seek(0)
}

func (o *Oto) SetVolume(v float64) {
	o.volume = v
	if o.player != nil {
		o.player.SetVolume(v)
	}
}

func (o *Oto) Volume() float64 { return o.volume }

func (o *Oto) SetPosition(seconds float64) {
	if o.player == nil {
		return
	}
	frame := int64(o.clip.Channels * 2)
	off := int64(seconds*float64(o.clip.BytesPerSecond())) / frame * frame
	o.seek(off)
}

// Position is the reader offset minus what oto buffered but has not played.
func (o *Oto) Position() float64 {
	if o.player == nil || o.clip.BytesPerSecond() == 0 {
		return 0
	}
	played := o.reader.offset() - int64(o.player.UnplayedBufferSize())
	if played < 0 {
		played = 0
	}
	return float64(played) / float64(o.clip.BytesPerSecond())
}

func (o *Oto) IsPlaying() bool {
	return o.player != nil && o.player.IsPlaying()
}

// Close releases the oto player.
func (o *Oto) Close() error {
	return o.closePlayer()
}

func (o *Oto) seek(off int64) {
	if s, ok := o.player.(io.Seeker); ok {
		if _, err := s.Seek(off, io.SeekStart); err != nil {
			o.log.Error().Err(err).Int64("offset", off).Msg("seek failed")
		}
		return
	}
	o.log.Warn().Msg("player cannot seek")
}

func (o *Oto) closePlayer() error {
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	o.reader = nil
	if err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}
