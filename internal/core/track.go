package core

import "image"

// Clip is a decoded audio buffer: interleaved signed 16-bit little-endian PCM.
type Clip struct {
	Name       string
	SampleRate int
	Channels   int
	PCM        []byte
}

// BytesPerSecond returns the PCM byte rate of the clip.
func (c *Clip) BytesPerSecond() int {
	return c.SampleRate * c.Channels * 2
}

// Length returns the clip duration in seconds.
func (c *Clip) Length() float64 {
	if c == nil || c.SampleRate <= 0 || c.Channels <= 0 {
		return 0
	}
	return float64(len(c.PCM)) / float64(c.BytesPerSecond())
}

// Track is a catalog entry.
type Track struct {
	Title  string
	Artist string
	Album  string
	Clip   *Clip
	Cover  image.Image // nil shows the default tint
	// Selectable tracks get a button in the tracklist.
	Selectable bool
}

// Catalog is the ordered list of playable tracks.
type Catalog []*Track

// At returns the track at i, or nil when i is out of range.
func (c Catalog) At(i int) *Track {
	if i < 0 || i >= len(c) {
		return nil
	}
	return c[i]
}
