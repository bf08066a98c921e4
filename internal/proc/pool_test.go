package proc

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSpawn_EmptyCommand(t *testing.T) {
	p := NewPool("/bin/sh")
	if err := p.Spawn("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("err = %v, want ErrEmptyCommand", err)
	}
}

func TestSpawn_FailureIsReported(t *testing.T) {
	p := NewPool("/definitely/not/a/shell")
	if err := p.Spawn("true"); err == nil {
		t.Fatal("expected spawn error")
	}
	if p.Running() != 0 {
		t.Fatalf("running = %d after failed spawn", p.Running())
	}
	// The pool stays usable.
	p.Shell = "/bin/sh"
	if err := p.Spawn("true"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	p.Shutdown()
}

func TestReap_DropsFinished(t *testing.T) {
	p := NewPool("/bin/sh")
	for i := 0; i < 3; i++ {
		if err := p.Spawn("exit 0"); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, func() bool { return p.Running() == 0 })
	if n := p.Reap(); n != 3 {
		t.Fatalf("reaped %d, want 3", n)
	}
	if n := p.Reap(); n != 0 {
		t.Fatalf("second reap dropped %d", n)
	}
}

func TestShutdown_KillsStragglers(t *testing.T) {
	p := NewPool("/bin/sh")
	p.Grace = 50 * time.Millisecond
	// Ignores SIGTERM so only the kill stops it.
	if err := p.Spawn("trap '' TERM; sleep 30"); err != nil {
		t.Fatal(err)
	}
	if err := p.Spawn("exit 0"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return p.Running() == 1 })
	// Give the shell time to install its trap.
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	killed := p.Shutdown()
	if killed != 1 {
		t.Fatalf("killed = %d, want 1", killed)
	}
	if d := time.Since(start); d > 5*time.Second {
		t.Fatalf("shutdown took %v", d)
	}
	if p.Running() != 0 {
		t.Fatalf("running = %d after shutdown", p.Running())
	}
	if err := p.Spawn("true"); !errors.Is(err, ErrClosed) {
		t.Fatalf("spawn after shutdown: %v", err)
	}
}

func TestShutdown_TerminatesPolitely(t *testing.T) {
	p := NewPool("/bin/sh")
	p.Grace = 5 * time.Second
	if err := p.Spawn("sleep 30"); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if killed := p.Shutdown(); killed != 0 {
		t.Fatalf("killed = %d, want 0 (SIGTERM should suffice)", killed)
	}
	if d := time.Since(start); d >= 5*time.Second {
		t.Fatalf("waited the whole grace period: %v", d)
	}
}

func TestPool_ConcurrentSpawnAndShutdown(t *testing.T) {
	p := NewPool("/bin/sh")
	p.Grace = 10 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Spawn("sleep 1")
			if err != nil && !errors.Is(err, ErrClosed) {
				t.Errorf("spawn: %v", err)
			}
			p.Reap()
		}()
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Shutdown()
		}()
	}
	wg.Wait()
	p.Shutdown()
	if p.Running() != 0 {
		t.Fatalf("running = %d", p.Running())
	}
}
