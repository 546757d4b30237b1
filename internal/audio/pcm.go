package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/swipedeck/internal/core"
)

// Tone synthesizes a sine clip with short attack and release ramps so that
// track boundaries do not click.
func Tone(name string, freq, seconds float64, sampleRate, channels int) *core.Clip {
	frames := int(seconds * float64(sampleRate))
	if frames < 0 {
		frames = 0
	}
	pcm := make([]byte, frames*channels*2)
	ramp := sampleRate / 50
	for i := 0; i < frames; i++ {
		env := 1.0
		if ramp > 0 {
			if i < ramp {
				env = float64(i) / float64(ramp)
			} else if frames-i < ramp {
				env = float64(frames-i) / float64(ramp)
			}
		}
		v := int16(0.3 * env * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * math.MaxInt16)
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint16(pcm[(i*channels+ch)*2:], uint16(v))
		}
	}
	return &core.Clip{Name: name, SampleRate: sampleRate, Channels: channels, PCM: pcm}
}

// LoadPCM reads a raw interleaved s16le file.
func LoadPCM(path string, sampleRate, channels int) (*core.Clip, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("load %s: invalid format %d Hz x %d", path, sampleRate, channels)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	frame := channels * 2
	if len(data)%frame != 0 {
		return nil, fmt.Errorf("load %s: %d bytes is not a whole number of %d-byte frames", path, len(data), frame)
	}
	return &core.Clip{
		Name:       filepath.Base(path),
		SampleRate: sampleRate,
		Channels:   channels,
		PCM:        data,
	}, nil
}

// SavePCM writes the clip's raw samples to path.
func SavePCM(path string, clip *core.Clip) error {
	if err := os.WriteFile(path, clip.PCM, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
