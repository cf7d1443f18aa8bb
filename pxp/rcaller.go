package pxp

import (
	"context"
	"errors"
	"time"
)

// RetryingCaller retries calls failing with a TransportFailure. Errors
// reported by the service itself and encoding failures are not retried.
type RetryingCaller struct {
	// Caller that is called multiple times if it returns an error.
	Caller Caller

	// Number of retries. 0 disables retries.
	RetryCount int

	// Delay between retries.
	RetryDelay time.Duration
}

// Call implements Caller. Waiting for the next retry is aborted, when the
// context is done.
func (c *RetryingCaller) Call(ctx context.Context, op Operation, params Params) (string, error) {
	// retry counter
	rcnt := 0
	for {
		// try a call
		text, err := c.Caller.Call(ctx, op, params)
		// on success, return value
		if err == nil {
			return text, nil
		}
		if !retryable(err) {
			return "", err
		}
		// give up when the retries have been used up
		rcnt++
		if rcnt > c.RetryCount {
			return "", err
		}
		clnLog.Debugf("Call of method %s failed, retry in %s: %v", op, c.RetryDelay, err)
		// wait before the next call
		t := time.NewTimer(c.RetryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			// return last error
			return "", err
		case <-t.C:
		}
	}
}

func retryable(err error) bool {
	var se *ServiceError
	return IsKind(err, TransportFailure) && !errors.As(err, &se)
}
