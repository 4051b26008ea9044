package timer

import (
	"fmt"
	"io"
)

// Notifier delivers the completion cue for a practice.
type Notifier interface {
	Notify(p Practice)
}

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	W io.Writer
}

func (n BellNotifier) Notify(Practice) {
	if n.W == nil {
		return
	}
	fmt.Fprint(n.W, "\a")
}

// NoopNotifier discards cues.
type NoopNotifier struct{}

func (NoopNotifier) Notify(Practice) {}
