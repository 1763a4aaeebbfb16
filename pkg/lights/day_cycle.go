package lights

import (
	"fmt"
	"strings"

	"github.com/df07/go-blockcast/pkg/core"
)

// TimeOfDay selects the color and intensity of the main light
type TimeOfDay int

const (
	Day TimeOfDay = iota
	Afternoon
	Night
	numTimesOfDay
)

type dayPreset struct {
	name      string
	color     core.Color
	intensity float64
}

var dayPresets = [numTimesOfDay]dayPreset{
	Day:       {"day", core.NewColor(255, 255, 255), 3.0},
	Afternoon: {"afternoon", core.NewColor(255, 165, 0), 2.0},
	Night:     {"night", core.NewColor(0, 0, 139), 1.0},
}

// Next advances the cycle: day, afternoon, night, day...
func (t TimeOfDay) Next() TimeOfDay {
	return (t + 1) % numTimesOfDay
}

// String returns the preset name
func (t TimeOfDay) String() string {
	if t < 0 || t >= numTimesOfDay {
		return fmt.Sprintf("TimeOfDay(%d)", int(t))
	}
	return dayPresets[t].name
}

// Apply sets the light color and intensity for this time of day
func (t TimeOfDay) Apply(light *Light) {
	if t < 0 || t >= numTimesOfDay {
		return
	}
	light.Color = dayPresets[t].color
	light.Intensity = dayPresets[t].intensity
}

// ParseTimeOfDay converts a preset name to a TimeOfDay
func ParseTimeOfDay(name string) (TimeOfDay, error) {
	for t, preset := range dayPresets {
		if strings.EqualFold(name, preset.name) {
			return TimeOfDay(t), nil
		}
	}
	return Day, fmt.Errorf("unknown time of day %q", name)
}
