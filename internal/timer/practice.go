package timer

import (
	"fmt"

	"github.com/alexanderramin/haven/internal/domain"
)

// Practice parameterizes a guided session: which category it records under,
// which durations it offers and what it says when finished.
type Practice struct {
	Category          domain.Category `yaml:"category"`
	Title             string          `yaml:"title"`
	Description       string          `yaml:"description"`
	PresetMinutes     []int           `yaml:"preset_minutes"`
	DefaultMinutes    int             `yaml:"default_minutes"`
	CompletionTitle   string          `yaml:"completion_title"`
	CompletionMessage string          `yaml:"completion_message"`
}

// Presets returns the built-in practices.
func Presets() []Practice {
	return []Practice{
		{
			Category:          domain.CategoryMeditation,
			Title:             "Meditation",
			Description:       "Sit comfortably and follow your breath.",
			PresetMinutes:     []int{5, 10, 15, 20},
			DefaultMinutes:    10,
			CompletionTitle:   "Meditation complete",
			CompletionMessage: "Take a moment to notice how you feel.",
		},
		{
			Category:          domain.CategoryAnxiety,
			Title:             "Anxiety Relief",
			Description:       "Breathe in for four, hold for four, out for four.",
			PresetMinutes:     []int{3, 5, 10},
			DefaultMinutes:    3,
			CompletionTitle:   "Well done",
			CompletionMessage: "You gave yourself space to calm down.",
		},
		{
			Category:          domain.CategorySleep,
			Title:             "Sleep Wind-Down",
			Description:       "Dim the lights and let the day go.",
			PresetMinutes:     []int{10, 15, 20, 30},
			DefaultMinutes:    15,
			CompletionTitle:   "Ready for rest",
			CompletionMessage: "Sleep well.",
		},
		{
			Category:          domain.CategorySelfCare,
			Title:             "Self-Care Break",
			Description:       "Do one kind thing for yourself.",
			PresetMinutes:     []int{5, 10, 15},
			DefaultMinutes:    10,
			CompletionTitle:   "Self-care done",
			CompletionMessage: "Small moments add up.",
		},
		{
			Category:          domain.CategoryStress,
			Title:             "Stress Relief",
			Description:       "Relax your shoulders, jaw and hands.",
			PresetMinutes:     []int{3, 5, 10},
			DefaultMinutes:    5,
			CompletionTitle:   "Tension released",
			CompletionMessage: "Carry this calm into the rest of your day.",
		},
	}
}

// Lookup finds the practice for a category.
func Lookup(practices []Practice, c domain.Category) (Practice, bool) {
	for _, p := range practices {
		if p.Category == c {
			return p, true
		}
	}
	return Practice{}, false
}

// Merge overlays non-empty fields of overrides onto base, matching by
// category. Overrides for unknown categories are ignored.
func Merge(base []Practice, overrides []Practice) []Practice {
	out := make([]Practice, len(base))
	copy(out, base)
	for _, o := range overrides {
		for i := range out {
			if out[i].Category != o.Category {
				continue
			}
			if o.Title != "" {
				out[i].Title = o.Title
			}
			if o.Description != "" {
				out[i].Description = o.Description
			}
			if len(o.PresetMinutes) > 0 {
				out[i].PresetMinutes = append([]int(nil), o.PresetMinutes...)
			}
			if o.DefaultMinutes > 0 {
				out[i].DefaultMinutes = o.DefaultMinutes
			}
			if o.CompletionTitle != "" {
				out[i].CompletionTitle = o.CompletionTitle
			}
			if o.CompletionMessage != "" {
				out[i].CompletionMessage = o.CompletionMessage
			}
		}
	}
	return out
}

// Validate checks that the practice can drive a countdown.
func (p Practice) Validate() error {
	if p.Category == "" {
		return fmt.Errorf("practice %q: category is required", p.Title)
	}
	if p.DefaultMinutes <= 0 {
		return fmt.Errorf("practice %s: default minutes must be positive", p.Category)
	}
	for _, m := range p.PresetMinutes {
		if m <= 0 {
			return fmt.Errorf("practice %s: preset minutes must be positive, got %d", p.Category, m)
		}
	}
	return nil
}

// DurationSeconds converts a chosen length in minutes to seconds, using the
// default when minutes is not positive.
func (p Practice) DurationSeconds(minutes int) int {
	if minutes <= 0 {
		minutes = p.DefaultMinutes
	}
	return minutes * 60
}
