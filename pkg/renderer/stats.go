package renderer

import (
	"time"

	"github.com/df07/go-blockcast/pkg/core"
)

// RenderStats contains statistics about a render pass
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose ray hit an object
	BackgroundPixels int           // Pixels resolved to the background color
	Tiles            int           // Number of tiles (1 for a sequential pass)
	Duration         time.Duration // Wall time of the pass
}

// add merges the counts of another pass or tile
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.BackgroundPixels += other.BackgroundPixels
}

// HitRatio returns the fraction of pixels that hit an object
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// AverageLuminance returns the mean luminance of the framebuffer in 0..255 units
func AverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Buffer) == 0 {
		return 0
	}
	total := 0.0
	for _, hex := range fb.Buffer {
		total += core.ColorFromHex(hex).Luminance()
	}
	return total / float64(len(fb.Buffer))
}
