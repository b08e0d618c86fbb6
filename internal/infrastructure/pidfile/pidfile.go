package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when a live daemon already owns the file
var ErrAlreadyRunning = errors.New("production daemon is already running")

// PIDFile guards a single daemon instance per campaign database
type PIDFile struct {
	path string
	pid  int
}

// New creates a PID file guard for path
func New(path string) *PIDFile {
	return &PIDFile{path: path, pid: os.Getpid()}
}

// Path returns the file location
func (p *PIDFile) Path() string { return p.path }

// Acquire writes the current PID. A stale or unreadable file is replaced.
func (p *PIDFile) Acquire() error {
	if owner, ok := p.Owner(); ok && owner != p.pid {
		return fmt.Errorf("%w (PID %d, %s)", ErrAlreadyRunning, owner, p.path)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(p.pid)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Owner returns the PID recorded in the file when that process is alive
func (p *PIDFile) Owner() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, alive(pid)
}

// Release removes the file if it still names this process
func (p *PIDFile) Release() error {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read PID file: %w", err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(p.pid) {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// alive probes the process with signal 0
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
