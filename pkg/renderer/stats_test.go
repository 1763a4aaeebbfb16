package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-blockcast/pkg/core"
)

func TestAverageLuminance(t *testing.T) {
	// Red, green, blue and black; the luminance weights sum to 1
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewColor(255, 0, 0))
	fb.Set(1, 0, core.NewColor(0, 255, 0))
	fb.Set(0, 1, core.NewColor(0, 0, 255))

	expected := 255.0 / 4
	if got := AverageLuminance(fb); math.Abs(got-expected) > 1e-6 {
		t.Errorf("Expected average luminance %f, got %f", expected, got)
	}
}

func TestAverageLuminance_Empty(t *testing.T) {
	if got := AverageLuminance(NewFramebuffer(0, 0)); got != 0 {
		t.Errorf("Expected 0 for an empty framebuffer, got %f", got)
	}
}

func TestRenderStats_HitRatio(t *testing.T) {
	var stats RenderStats
	if stats.HitRatio() != 0 {
		t.Errorf("Expected 0 for no pixels, got %f", stats.HitRatio())
	}

	stats.add(RenderStats{TotalPixels: 4, HitPixels: 1, BackgroundPixels: 3})
	stats.add(RenderStats{TotalPixels: 4, HitPixels: 3, BackgroundPixels: 1})
	if stats.HitRatio() != 0.5 {
		t.Errorf("Expected hit ratio 0.5, got %f", stats.HitRatio())
	}
	if stats.BackgroundPixels != 4 {
		t.Errorf("Expected 4 background pixels, got %d", stats.BackgroundPixels)
	}
}
