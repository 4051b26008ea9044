package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/haven/internal/cli/formatter"
	"github.com/alexanderramin/haven/internal/service"
	"github.com/alexanderramin/haven/internal/timer"
)

// headlessResult is what a line-mode practice produced.
type headlessResult struct {
	Completed bool
	Outcome   service.PracticeOutcome
}

// runHeadless counts a practice down without the full-screen view, printing
// one line per remaining minute to w. Cancelling ctx stops the countdown
// early and records the elapsed time.
func runHeadless(ctx context.Context, app *App, p timer.Practice, minutes int, w io.Writer) (headlessResult, error) {
	done := make(chan int, 1)
	ticks := make(chan timer.Snapshot, 8)

	ctrl, err := timer.NewController(p.DurationSeconds(minutes), app.scheduler(),
		timer.WithOnTick(func(s timer.Snapshot) {
			select {
			case ticks <- s:
			default:
			}
		}),
		timer.WithOnComplete(func(elapsed int) {
			select {
			case done <- elapsed:
			default:
			}
		}),
	)
	if err != nil {
		return headlessResult{}, err
	}
	defer ctrl.Close()

	startedAt := time.Now().UTC()
	if err := ctrl.Start(); err != nil {
		return headlessResult{}, err
	}
	fmt.Fprintf(w, "%s  %s  %s\n", formatter.Header(p.Title), formatter.FormatClock(ctrl.Snapshot().Duration),
		formatter.Dim("Ctrl-C stops early and saves."))

	for {
		select {
		case s := <-ticks:
			if s.TimeLeft > 0 && s.TimeLeft%60 == 0 {
				fmt.Fprintf(w, "  %s %s\n", formatter.FormatClock(s.TimeLeft), formatter.Dim("left"))
			}

		case elapsed := <-done:
			app.notifier().Notify(p)
			out := app.Practice.Finish(ctx, service.PracticeRun{
				Category:        p.Category,
				DurationSeconds: elapsed,
				TimeLeftSeconds: 0,
				StartedAt:       startedAt,
			})
			return headlessResult{Completed: true, Outcome: out}, nil

		case <-ctx.Done():
			snap := ctrl.Stop()
			if snap.Elapsed() <= 0 {
				return headlessResult{Outcome: service.PracticeOutcome{Err: service.ErrNothingToRecord}}, nil
			}
			out := app.Practice.Finish(context.WithoutCancel(ctx), service.PracticeRun{
				Category:        p.Category,
				DurationSeconds: snap.Duration,
				TimeLeftSeconds: snap.TimeLeft,
				StartedAt:       startedAt,
			})
			return headlessResult{Outcome: out}, nil
		}
	}
}
