// Package main generates a demo deck: a YAML config, raw PCM tone tracks
// and noise artwork. Output is deterministic for a given seed.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	perlin "github.com/aquilax/go-perlin"

	"github.com/elektrokombinacija/swipedeck/internal/audio"
	"github.com/elektrokombinacija/swipedeck/internal/config"
)

// CatalogParams controls catalog generation.
type CatalogParams struct {
	Seed       int64
	Tracks     int
	Seconds    float64
	SampleRate int
	Channels   int
	CoverSize  int
}

// pentatonic steps above the root, in semitones
var scale = []int{0, 2, 4, 7, 9}

var adjectives = []string{"Quiet", "Bright", "Hollow", "Warm", "Distant", "Slow", "Glass", "Open"}
var nouns = []string{"Harbor", "Signal", "Orbit", "Meadow", "Engine", "Lantern", "River", "Static"}

// trackFile is one generated track and the files backing it.
type trackFile struct {
	track config.Track
	freq  float64
	art   *image.RGBA
}

// generateCatalog builds the track list and the deck config referencing it.
// Paths are relative to the output directory.
func generateCatalog(params CatalogParams) (*config.Config, []trackFile) {
	rng := rand.New(rand.NewSource(params.Seed))

	cfg := config.Default()
	cfg.Audio.SampleRate = params.SampleRate
	cfg.Audio.Channels = params.Channels
	cfg.Cover.Size = params.CoverSize
	cfg.Tracks = nil

	files := make([]trackFile, params.Tracks)
	for i := range files {
		step := scale[rng.Intn(len(scale))] + 12*rng.Intn(2)
		freq := 220 * math.Pow(2, float64(step)/12)
		title := adjectives[rng.Intn(len(adjectives))] + " " + nouns[rng.Intn(len(nouns))]

		files[i] = trackFile{
			track: config.Track{
				Title:      title,
				Artist:     "Generated",
				Album:      fmt.Sprintf("Seed %d", params.Seed),
				Cover:      filepath.Join("covers", fmt.Sprintf("%02d.png", i)),
				PCM:        filepath.Join("tracks", fmt.Sprintf("%02d.pcm", i)),
				Seconds:    params.Seconds,
				Selectable: true,
			},
			freq: freq,
			art:  noiseArtwork(rng.Int63(), params.CoverSize),
		}
		cfg.Tracks = append(cfg.Tracks, files[i].track)
	}
	return cfg, files
}

// noiseArtwork renders 2D noise through a two-color ramp picked from seed.
func noiseArtwork(seed int64, size int) *image.RGBA {
	p := perlin.NewPerlin(2, 2, 3, seed)
	rng := rand.New(rand.NewSource(seed))
	lo := color.RGBA{R: uint8(rng.Intn(128)), G: uint8(rng.Intn(128)), B: uint8(rng.Intn(128)), A: 255}
	hi := color.RGBA{R: uint8(128 + rng.Intn(128)), G: uint8(128 + rng.Intn(128)), B: uint8(128 + rng.Intn(128)), A: 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := (p.Noise2D(float64(x)/float64(size)*4, float64(y)/float64(size)*4) + 1) / 2
			n = math.Max(0, math.Min(1, n))
			img.SetRGBA(x, y, color.RGBA{
				R: mix(lo.R, hi.R, n),
				G: mix(lo.G, hi.G, n),
				B: mix(lo.B, hi.B, n),
				A: 255,
			})
		}
	}
	return img
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// writeCatalog writes deck.yaml, the PCM tracks and the artwork under dir.
func writeCatalog(dir string, cfg *config.Config, files []trackFile, params CatalogParams) error {
	for _, sub := range []string{"tracks", "covers"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return err
		}
	}
	for _, f := range files {
		clip := audio.Tone(f.track.Title, f.freq, params.Seconds, params.SampleRate, params.Channels)
		if err := audio.SavePCM(filepath.Join(dir, f.track.PCM), clip); err != nil {
			return err
		}
		if err := savePNG(filepath.Join(dir, f.track.Cover), f.art); err != nil {
			return err
		}
	}
	return config.Save(filepath.Join(dir, "deck.yaml"), cfg)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	tracks := flag.Int("n", 6, "Number of tracks")
	seconds := flag.Float64("seconds", 20, "Track length in seconds")
	rate := flag.Int("rate", 44100, "Sample rate")
	channels := flag.Int("channels", 2, "Channel count")
	coverSize := flag.Int("cover-size", 256, "Artwork edge in pixels")
	outputDir := flag.String("out", "deck", "Output directory")

	flag.Parse()

	if *tracks <= 0 || *seconds <= 0 || *rate <= 0 || *channels <= 0 || *coverSize <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -n, -seconds, -rate, -channels and -cover-size must be positive")
		os.Exit(1)
	}

	params := CatalogParams{
		Seed:       *seed,
		Tracks:     *tracks,
		Seconds:    *seconds,
		SampleRate: *rate,
		Channels:   *channels,
		CoverSize:  *coverSize,
	}

	cfg, files := generateCatalog(params)
	if err := writeCatalog(*outputDir, cfg, files, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d tracks in %s\n", len(files), *outputDir)
	for _, f := range files {
		fmt.Printf("  %-18s %6.1f Hz  %s\n", f.track.Title, f.freq, f.track.PCM)
	}
}
