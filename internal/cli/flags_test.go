package cli

import (
	"testing"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFlag(t *testing.T) {
	var f categoryFlag
	require.NoError(t, f.Set("Anxiety"))
	assert.Equal(t, domain.CategoryAnxiety, f.value)
	assert.Equal(t, "anxiety-management", f.String())
	assert.Equal(t, "category", f.Type())

	assert.Error(t, f.Set("yoga"))
	assert.Equal(t, domain.CategoryAnxiety, f.value)
}

func TestUserTypeFlag(t *testing.T) {
	var f userTypeFlag
	require.NoError(t, f.Set("parent"))
	assert.Equal(t, domain.UserParent, f.value)
	assert.Error(t, f.Set("guest"))
}

func TestCompleteCategories(t *testing.T) {
	got, _ := completeCategories(nil, nil, "s")
	assert.Equal(t, []string{"sleep-hygiene", "self-care", "stress-relief"}, got)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateEmail("sam@example.com"))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("not-an-email"))
	assert.NoError(t, validateOptionalEmail(""))
	assert.Error(t, validatePassword("short"))
	assert.NoError(t, validatePassword("long enough"))
	assert.NoError(t, validatePositiveInt(""))
	assert.Error(t, validatePositiveInt("-3"))
	assert.Error(t, validateRequired("Name")(""))
}

func TestFormDefaults(t *testing.T) {
	p, ok := timer.Lookup(timer.Presets(), domain.CategorySleep)
	require.True(t, ok)

	minutes := ""
	require.NotNil(t, durationForm(p, &minutes))
	assert.Equal(t, "15", minutes)

	mood, note := "", ""
	require.NotNil(t, moodForm(&mood, &note))
	assert.Equal(t, "happy", mood)

	c := credentials{}
	require.NotNil(t, loginForm(&c))
	assert.Equal(t, "teen", c.UserType)

	selected := ""
	require.NotNil(t, categoryForm(timer.Presets(), &selected))
	assert.Equal(t, "meditation", selected)
}

func TestAppDefaults(t *testing.T) {
	app := &App{}
	assert.False(t, app.interactive())
	assert.Len(t, app.practices(), len(domain.Categories))
	assert.IsType(t, timer.NoopNotifier{}, app.notifier())
	assert.IsType(t, timer.TickerScheduler{}, app.scheduler())
}
