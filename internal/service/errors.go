package service

import "errors"

// ErrNothingToRecord is returned when a stopped session has no elapsed time
// to report.
var ErrNothingToRecord = errors.New("no elapsed time to record")
