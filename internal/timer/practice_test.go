package timer

import (
	"testing"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_CoverEveryCategory(t *testing.T) {
	presets := Presets()
	for _, c := range domain.Categories {
		p, ok := Lookup(presets, c)
		require.True(t, ok, "missing preset for %s", c)
		assert.NoError(t, p.Validate())
	}
}

func TestPractice_DurationSeconds(t *testing.T) {
	p, ok := Lookup(Presets(), domain.CategoryAnxiety)
	require.True(t, ok)

	assert.Equal(t, 180, p.DurationSeconds(0))
	assert.Equal(t, 600, p.DurationSeconds(10))
}

func TestMerge_OverridesMatchingCategory(t *testing.T) {
	merged := Merge(Presets(), []Practice{
		{Category: domain.CategorySleep, DefaultMinutes: 25, PresetMinutes: []int{25, 45}},
		{Category: "unknown", Title: "ignored"},
	})

	p, ok := Lookup(merged, domain.CategorySleep)
	require.True(t, ok)
	assert.Equal(t, 25, p.DefaultMinutes)
	assert.Equal(t, []int{25, 45}, p.PresetMinutes)
	assert.Equal(t, "Sleep Wind-Down", p.Title)
	assert.Len(t, merged, len(Presets()))

	orig, _ := Lookup(Presets(), domain.CategorySleep)
	assert.Equal(t, 15, orig.DefaultMinutes)
}

func TestPractice_Validate(t *testing.T) {
	assert.Error(t, Practice{Title: "x", DefaultMinutes: 5}.Validate())
	assert.Error(t, Practice{Category: domain.CategoryStress}.Validate())
	assert.Error(t, Practice{Category: domain.CategoryStress, DefaultMinutes: 5, PresetMinutes: []int{0}}.Validate())
}
