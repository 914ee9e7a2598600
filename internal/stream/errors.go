package stream

import "errors"

// ErrAlreadyRunning is returned by Start when the scheduler is already
// producing.
var ErrAlreadyRunning = errors.New("stream: scheduler already running")
