package auth

import (
	"fmt"
	"time"
)

// ValidationError marks input rejected before any network call. Handlers map
// it to a 400 with the message shown inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ResendBlockedError is returned while the resend window is still open.
type ResendBlockedError struct {
	RetryAfter time.Duration
}

func (e *ResendBlockedError) Error() string {
	return fmt.Sprintf("resend available in %d seconds", int(e.RetryAfter.Seconds()+0.5))
}
