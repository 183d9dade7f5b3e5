package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrUnavailable matches a transient [BackendError]: the backend could not be
// reached, but a later attempt may succeed.
var ErrUnavailable = errors.New("cache backend unavailable")

// BackendError reports a failed operation against a remote cache backend.
type BackendError struct {
	Backend   string
	Op        string
	Err       error
	Transient bool
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s cache %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Is reports transient failures as ErrUnavailable.
func (e *BackendError) Is(target error) bool {
	return target == ErrUnavailable && e.Transient
}

// backendError wraps err for backend and op, marking network failures and
// deadlines as transient. A nil err stays nil.
func backendError(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	transient := errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
	return &BackendError{Backend: backend, Op: op, Err: err, Transient: transient}
}

// connectAttempts bounds how often a backend connection is tried.
const connectAttempts = 3

// retryDelay is the first backoff step; tests shorten it.
var retryDelay = time.Second

// retry calls fn until it succeeds, fails permanently, or attempts run out.
// The delay doubles after each transient failure.
func retry(ctx context.Context, attempts int, fn func() error) error {
	delay := retryDelay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !errors.Is(err, ErrUnavailable) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
