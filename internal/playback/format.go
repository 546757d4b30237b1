package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as MM:SS. Negative input renders as 00:00.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	m := int(math.Floor(seconds / 60))
	s := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", m, s)
}
