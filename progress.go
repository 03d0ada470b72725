package video_fetcher

import (
	"fmt"
	"math"
	"strings"
)

const DefaultBarWidth = 50

// A Bar renders fixed-width textual progress bars.
type Bar struct {
	Width int
	Fill  string
	Empty string
}

var (
	ASCIIBar = Bar{Width: DefaultBarWidth, Fill: "=", Empty: " "}
	BlockBar = Bar{Width: DefaultBarWidth, Fill: "█", Empty: "░"}
)

// Filled returns how many cells are filled for the given progress. total must be positive.
func (b Bar) Filled(done int64, total int64) int {
	if done <= 0 {
		return 0
	}
	if done >= total {
		return b.Width
	}
	return int(math.Round(float64(b.Width) * float64(done) / float64(total)))
}

// Render returns e.g. "[=====     ] 50.0%". total must be positive.
func (b Bar) Render(done int64, total int64) string {
	filled := b.Filled(done, total)
	percent := 100 * float64(done) / float64(total)
	if done >= total {
		percent = 100
	}
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strings.Repeat(b.Fill, filled))
	sb.WriteString(strings.Repeat(b.Empty, b.Width-filled))
	sb.WriteString("] ")
	sb.WriteString(fmt.Sprintf("%.1f%%", percent))
	return sb.String()
}

// Render uses ASCIIBar.
func Render(done int64, total int64) string {
	return ASCIIBar.Render(done, total)
}
