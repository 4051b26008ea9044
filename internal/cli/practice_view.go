package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/service"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshInterval is how often the view redraws the countdown. The
// controller ticks once a second; redrawing faster keeps pause latency low.
const refreshInterval = 250 * time.Millisecond

// refreshMsg asks the view to re-read the controller.
type refreshMsg struct{}

// recordedMsg carries the result of recording a finished run.
type recordedMsg struct {
	outcome service.PracticeOutcome
}

type practiceKeyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Stop   key.Binding
	Quit   key.Binding
}

func newPracticeKeyMap() practiceKeyMap {
	return practiceKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop & save")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k practiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Stop, k.Quit}
}

func (k practiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// practiceView runs one guided practice countdown full screen.
type practiceView struct {
	ctx      context.Context
	app      *App
	practice timer.Practice
	ctrl     *timer.Controller

	// completed receives the elapsed seconds when the countdown reaches
	// zero. Written from the scheduler goroutine, drained on refresh.
	completed chan int
	startedAt time.Time

	bar     progress.Model
	spinner spinner.Model
	help    help.Model
	keys    practiceKeyMap

	recording bool
	finished  bool
	quitting  bool
	status    string
}

func newPracticeView(ctx context.Context, app *App, p timer.Practice, minutes int) (*practiceView, error) {
	completed := make(chan int, 1)
	ctrl, err := timer.NewController(p.DurationSeconds(minutes), app.scheduler(),
		timer.WithOnComplete(func(elapsed int) {
			select {
			case completed <- elapsed:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	bar := progress.New(
		progress.WithSolidFill(string(formatter.CategoryColor(p.Category))),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &practiceView{
		ctx:       ctx,
		app:       app,
		practice:  p,
		ctrl:      ctrl,
		completed: completed,
		bar:       bar,
		spinner:   sp,
		help:      help.New(),
		keys:      newPracticeKeyMap(),
	}, nil
}

func (v *practiceView) Init() tea.Cmd {
	return refreshTick()
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (v *practiceView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.bar.Width = min(max(msg.Width-24, 10), 60)
		v.help.Width = msg.Width
		return v, nil

	case refreshMsg:
		if v.quitting {
			return v, nil
		}
		select {
		case elapsed := <-v.completed:
			return v, tea.Batch(v.complete(elapsed), refreshTick())
		default:
		}
		return v, refreshTick()

	case recordedMsg:
		if v.quitting {
			return v, nil
		}
		v.recording = false
		v.status = recordStatus(msg.outcome)
		v.ctrl.Reset()
		return v, nil

	case spinner.TickMsg:
		if !v.recording {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *practiceView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Quit) {
		v.ctrl.Close()
		v.quitting = true
		return v, tea.Quit
	}
	if v.recording {
		return v, nil
	}
	// A run that finished since the last refresh is recorded before any key
	// can start the next one.
	select {
	case elapsed := <-v.completed:
		return v, v.complete(elapsed)
	default:
	}

	switch {
	case key.Matches(msg, v.keys.Toggle):
		snap := v.ctrl.Snapshot()
		if snap.State == timer.Running {
			v.ctrl.Pause()
			return v, nil
		}
		if snap.State != timer.Paused {
			v.startedAt = time.Now().UTC()
		}
		v.finished = false
		v.status = ""
		if err := v.ctrl.Start(); err != nil {
			v.status = formatter.Failure(err.Error())
		}
		return v, nil

	case key.Matches(msg, v.keys.Reset):
		v.ctrl.Reset()
		v.finished = false
		v.status = ""
		return v, nil

	case key.Matches(msg, v.keys.Stop):
		snap := v.ctrl.Stop()
		if snap.State == timer.Completed {
			return v, nil
		}
		if snap.Elapsed() <= 0 {
			v.ctrl.Reset()
			v.status = formatter.FormatRecordResult(0, service.ErrNothingToRecord, true)
			return v, nil
		}
		v.recording = true
		return v, tea.Batch(v.record(snap.Duration, snap.TimeLeft), v.spinner.Tick)
	}
	return v, nil
}

// complete handles the countdown reaching zero: cue, then record the full
// duration.
func (v *practiceView) complete(elapsed int) tea.Cmd {
	v.app.notifier().Notify(v.practice)
	v.finished = true
	v.recording = true
	return tea.Batch(v.record(elapsed, 0), v.spinner.Tick)
}

func (v *practiceView) record(duration, timeLeft int) tea.Cmd {
	run := service.PracticeRun{
		Category:        v.practice.Category,
		DurationSeconds: duration,
		TimeLeftSeconds: timeLeft,
		StartedAt:       v.startedAt,
	}
	ctx, finish := v.ctx, v.app.Practice.Finish
	return func() tea.Msg {
		return recordedMsg{outcome: finish(ctx, run)}
	}
}

func (v *practiceView) View() string {
	if v.quitting {
		return ""
	}
	snap := v.ctrl.Snapshot()

	if snap.State == timer.Running {
		v.keys.Toggle.SetHelp("space", "pause")
	} else if snap.State == timer.Paused {
		v.keys.Toggle.SetHelp("space", "resume")
	} else {
		v.keys.Toggle.SetHelp("space", "start")
	}

	var b strings.Builder
	b.WriteString(formatter.Header(v.practice.Title) + "  " + formatter.CategoryBadge(v.practice.Category) + "\n")
	if v.practice.Description != "" {
		b.WriteString(formatter.Dim(v.practice.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.bar.ViewAs(snap.Fraction()))
	b.WriteString("  " + formatter.Bold(formatter.FormatClock(snap.TimeLeft)) + formatter.Dim(" left"))
	b.WriteString("  " + formatter.StatePill(snap.State) + "\n")

	if v.finished {
		b.WriteString("\n" + formatter.FormatCompletion(v.practice) + "\n")
	}
	if v.recording {
		b.WriteString("\n" + v.spinner.View() + " " + formatter.Dim("Saving your session...") + "\n")
	} else if v.status != "" {
		b.WriteString("\n" + v.status + "\n")
	}

	b.WriteString("\n" + v.help.View(v.keys))
	return b.String()
}

// recordStatus turns a recording outcome into the one-line status.
func recordStatus(out service.PracticeOutcome) string {
	minutes := 0
	if out.Log != nil {
		minutes = out.Log.Minutes
	}
	line := formatter.FormatRecordResult(minutes, out.Err, errors.Is(out.Err, service.ErrNothingToRecord))
	if out.JournalErr != nil {
		line += "\n" + formatter.Warning("Could not write the local journal: "+out.JournalErr.Error())
	}
	return line
}
