package session

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation is matched by every precondition failure of the
// controller. The UI ignores these; nothing changes state when one is returned.
var ErrInvalidOperation = errors.New("invalid operation")

var (
	ErrSessionRunning  = fmt.Errorf("%w: session is running", ErrInvalidOperation)
	ErrNotRunning      = fmt.Errorf("%w: session is not running", ErrInvalidOperation)
	ErrIntervalLimit   = fmt.Errorf("%w: interval limit reached", ErrInvalidOperation)
	ErrInvalidInterval = fmt.Errorf("%w: durations must be positive", ErrInvalidOperation)
	ErrIndexOutOfRange = fmt.Errorf("%w: interval index out of range", ErrInvalidOperation)
	ErrNoIntervals     = fmt.Errorf("%w: no intervals configured", ErrInvalidOperation)
	ErrAlreadyPaused   = fmt.Errorf("%w: session already paused", ErrInvalidOperation)
	ErrNotPaused       = fmt.Errorf("%w: session is not paused", ErrInvalidOperation)
)
