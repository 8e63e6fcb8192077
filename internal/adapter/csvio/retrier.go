package csvio

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Opener opens input files, retrying transient errors with exponential
// backoff.
type Opener struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
	open            func(name string) (*os.File, error)
}

// NewOpener creates an Opener that gives up after maxRetries retries or
// once timeout has elapsed.
func NewOpener(maxRetries int, timeout time.Duration, logger zerolog.Logger) *Opener {
	return &Opener{
		maxRetries:      maxRetries,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		maxElapsedTime:  timeout,
		logger:          logger,
		open:            os.Open,
	}
}

// Open opens path for reading.
func (o *Opener) Open(ctx context.Context, path string) (*os.File, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.initialInterval
	b.MaxInterval = o.maxInterval
	b.MaxElapsedTime = o.maxElapsedTime

	var file *os.File
	retryCount := 0

	err := backoff.Retry(func() error {
		f, err := o.open(path)
		if err == nil {
			file = f
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > o.maxRetries {
			return backoff.Permanent(err)
		}

		o.logger.Warn().
			Err(err).
			Str("path", path).
			Int("retry", retryCount).
			Msg("transient error opening input, retrying")

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return file, nil
}

// isRetryableError checks if an open error may succeed on a later attempt.
func isRetryableError(err error) bool {
	return errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY)
}
