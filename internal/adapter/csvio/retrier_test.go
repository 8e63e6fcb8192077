package csvio

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestOpenerRetriesOnRetryableError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte("type,client,tx,amount\n"), 0o600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	o := NewOpener(2, 100*time.Millisecond, zerolog.Nop())
	o.initialInterval = 1 * time.Millisecond
	o.maxInterval = 2 * time.Millisecond

	attempts := 0
	o.open = func(name string) (*os.File, error) {
		attempts++
		if attempts < 2 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.EINTR}
		}
		return os.Open(name)
	}

	f, err := o.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	defer f.Close()

	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestOpenerGivesUpAfterMaxRetries(t *testing.T) {
	o := NewOpener(1, time.Second, zerolog.Nop())
	o.initialInterval = 1 * time.Millisecond
	o.maxInterval = 2 * time.Millisecond

	attempts := 0
	o.open = func(name string) (*os.File, error) {
		attempts++
		return nil, &fs.PathError{Op: "open", Path: name, Err: syscall.EAGAIN}
	}

	if _, err := o.Open(context.Background(), "busy.csv"); !errors.Is(err, syscall.EAGAIN) {
		t.Fatalf("expected EAGAIN, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestOpenerStopsOnPermanentError(t *testing.T) {
	o := NewOpener(3, time.Second, zerolog.Nop())

	_, err := o.Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&fs.PathError{Op: "open", Path: "x", Err: syscall.EBUSY}) {
		t.Fatalf("expected EBUSY to be retryable")
	}

	if isRetryableError(fs.ErrPermission) {
		t.Fatalf("expected permission error to be non-retryable")
	}
}
