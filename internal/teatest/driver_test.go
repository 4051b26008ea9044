package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// recorder appends every key it sees and echoes "!" through a Cmd.
type recorder struct {
	keys   []string
	echoes int
	width  int
}

func (m *recorder) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (m *recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case echoMsg:
		m.echoes++
	case tea.KeyMsg:
		m.keys = append(m.keys, msg.String())
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "!":
			return m, tea.Batch(
				func() tea.Msg { return echoMsg("a") },
				func() tea.Msg { return echoMsg("b") },
			)
		case "t":
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return echoMsg("late") })
		}
	}
	return m, nil
}

func (m *recorder) View() string {
	return strings.Join(m.keys, ",")
}

func TestDriver_DrainsInitAndBatches(t *testing.T) {
	m := &recorder{}
	d := New(t, m, WithSize(100, 30))
	d.DrainInit()
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 1, m.echoes)

	d.PressKey('!')
	assert.Equal(t, 3, m.echoes)
}

func TestDriver_DropsBlockingCmds(t *testing.T) {
	m := &recorder{}
	d := New(t, m)
	d.PressKey('t')
	assert.Equal(t, 0, m.echoes)
	assert.Equal(t, 1, d.Dropped)
}

func TestDriver_TypeAndSpace(t *testing.T) {
	m := &recorder{}
	d := New(t, m)
	d.Type("a b")
	d.RequireViewContains("a, ,b")
}

func TestDriver_StopsAfterQuit(t *testing.T) {
	m := &recorder{}
	d := New(t, m)
	d.PressKey('q')
	assert.True(t, d.Quitting)
	d.PressKey('x')
	assert.Equal(t, []string{"q"}, m.keys)
}
