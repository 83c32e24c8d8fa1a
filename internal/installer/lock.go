package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// installLock is the advisory lock taken around every load-mutate-save
// sequence so two CLI invocations cannot interleave registry writes.
type installLock struct {
	// PID is the process ID holding the lock.
	PID int `yaml:"pid"`
	// Operation names the lifecycle operation in flight.
	Operation string `yaml:"operation"`
	// StartedAt is when the lock was acquired.
	StartedAt time.Time `yaml:"started_at"`
}

const lockFileName = "install.lock"

// acquireLock takes the extensions-home lock, waiting for a live holder and
// reaping locks left behind by dead processes. The returned func releases it.
func acquireLock(ctx context.Context, home, operation string) (func(), error) {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("preparing extensions home: %w", err)
	}

	lockPath := filepath.Join(home, lockFileName)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			lock := installLock{PID: os.Getpid(), Operation: operation, StartedAt: time.Now()}
			data, merr := yaml.Marshal(lock)
			if merr == nil {
				_, _ = f.Write(data)
			}
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquiring install lock: %w", err)
		}

		if existing, lerr := loadLock(lockPath); lerr == nil && isLockStale(existing) {
			_ = os.Remove(lockPath)
			continue
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquiring install lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// loadLock reads a lock file from disk. Returns nil and no error if the
// lock file doesn't exist.
func loadLock(lockPath string) (*installLock, error) {
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var lock installLock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	return &lock, nil
}

// isLockStale checks if a lock's holder is no longer running.
func isLockStale(lock *installLock) bool {
	if lock == nil {
		return true
	}
	return !isProcessRunning(lock.PID)
}

// isProcessRunning checks if a process with the given PID exists.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds. Send signal 0 to check existence.
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
