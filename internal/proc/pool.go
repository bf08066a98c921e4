// Package proc launches todo commands as detached processes and keeps
// their handles so they can be cleaned up when the session ends.
package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrClosed       = errors.New("process pool is shut down")
)

// DefaultGrace is how long Shutdown waits after asking processes to stop
// before killing them.
const DefaultGrace = 2 * time.Second

type handle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (h *handle) finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Pool owns every process spawned in a session. Spawn may be called from
// any goroutine; Shutdown drains the pool exactly once at a time.
type Pool struct {
	Shell string
	Grace time.Duration

	mu     sync.Mutex
	procs  []*handle
	closed bool

	drainMu sync.Mutex
}

// NewPool uses shell to run commands; "" picks $SHELL, then /bin/sh.
func NewPool(shell string) *Pool {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Pool{Shell: shell, Grace: DefaultGrace}
}

// Spawn starts command through the shell with all standard streams
// discarded and returns once the process is running.
func (p *Pool) Spawn(command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return ErrEmptyCommand
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	cmd := exec.Command(p.Shell, "-c", command)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %q: %w", command, err)
	}
	h := &handle{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(h.done)
	}()
	p.procs = append(p.procs, h)
	return nil
}

// Running counts processes that have not exited yet.
func (p *Pool) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, h := range p.procs {
		if !h.finished() {
			n++
		}
	}
	return n
}

// Reap forgets processes that already exited and returns how many it dropped.
func (p *Pool) Reap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.procs[:0]
	for _, h := range p.procs {
		if !h.finished() {
			kept = append(kept, h)
		}
	}
	n := len(p.procs) - len(kept)
	for i := len(kept); i < len(p.procs); i++ {
		p.procs[i] = nil
	}
	p.procs = kept
	return n
}

// Shutdown stops accepting work, asks every live process group to
// terminate, kills whatever is still running after the grace period and
// waits for all of them. It returns how many had to be killed.
func (p *Pool) Shutdown() int {
	p.drainMu.Lock()
	defer p.drainMu.Unlock()

	p.mu.Lock()
	p.closed = true
	procs := p.procs
	p.procs = nil
	p.mu.Unlock()

	var live []*handle
	for _, h := range procs {
		if !h.finished() {
			terminate(h.cmd)
			live = append(live, h)
		}
	}

	killed := 0
	deadline := time.Now().Add(p.Grace)
	for _, h := range live {
		if wait := time.Until(deadline); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-h.done:
			case <-t.C:
			}
			t.Stop()
		}
		if !h.finished() {
			kill(h.cmd)
			killed++
			<-h.done
		}
	}
	return killed
}
