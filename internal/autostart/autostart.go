// Package autostart launches the configured startup commands and reaps
// them, the Go equivalent of dynamd.c's autostart() + sigchld(). It is
// also where the spawn() exit-code bug is deliberately fixed: the
// original calls exit(EXIT_SUCCESS) after a failed execvp, which reports
// a clean exit for a process that never ran. os/exec's Start already
// returns that failure synchronously here, so the fix falls out of using
// the standard fork/exec wrapper instead of a bare vfork+execvp, but
// Launch still reports failures explicitly rather than discarding them.
package autostart

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Spec is one [][]string row of config.Autostart: argv[0] plus arguments.
type Spec = []string

// Reaper owns the single extra goroutine SPEC_FULL.md §4.13 permits
// outside the dispatcher: dynamd.c's sigchld() runs inside an async
// signal handler, which Go forbids doing anything unsafe in (no
// allocation, no syscalls beyond a short allow-list). The idiomatic
// replacement is a dedicated goroutine parked on signal.Notify(SIGCHLD)
// that calls wait4 itself — this is the one justified exception to the
// single-goroutine dispatcher model.
type Reaper struct {
	mu      sync.Mutex
	tracked map[int]struct{}
	sigCh   chan os.Signal
	done    chan struct{}
}

// NewReaper installs the SIGCHLD handler and starts the reaping loop.
func NewReaper() *Reaper {
	r := &Reaper{
		tracked: make(map[int]struct{}),
		sigCh:   make(chan os.Signal, 8),
		done:    make(chan struct{}),
	}
	signal.Notify(r.sigCh, syscall.SIGCHLD)
	go r.loop()
	return r
}

func (r *Reaper) loop() {
	for {
		select {
		case <-r.sigCh:
			r.reapAll()
		case <-r.done:
			signal.Stop(r.sigCh)
			return
		}
	}
}

// reapAll drains every exited child without blocking, matching sigchld's
// while (0 < waitpid(-1, NULL, WNOHANG)) loop.
func (r *Reaper) reapAll() {
	for {
		var ws syscall.WaitStatus
		pid, err := syscall.Wait4(-1, &ws, syscall.WNOHANG, nil)
		if pid <= 0 || err != nil {
			return
		}
		r.mu.Lock()
		delete(r.tracked, pid)
		r.mu.Unlock()
		log.WithField("pid", pid).Debug("autostart: reaped child")
	}
}

// Track registers pid as one of ours, mirroring autostart_pids. The set
// does not filter reaping: reapAll waits on any exited child of dynamd
// and only removes the reaped pid from the set.
func (r *Reaper) Track(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked[pid] = struct{}{}
}

// Stop ends the reaping loop (called from cleanup on shutdown).
func (r *Reaper) Stop() { close(r.done) }

// Launch runs each autostart command as a detached child, in its own
// session (Setsid, mirroring dynamd.c's double-fork-free setsid() call)
// so it survives dynamd restarting, and registers its pid with reaper.
// Unlike spawn()'s silent exit(EXIT_SUCCESS) on exec failure, a launch
// failure here is logged with the real error and simply skipped — no
// process, no misleading success.
func Launch(reaper *Reaper, cmds []Spec) []int {
	var pids []int
	for _, argv := range cmds {
		if len(argv) == 0 {
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := cmd.Start(); err != nil {
			log.WithError(err).WithField("cmd", argv).Warn("autostart: failed to launch")
			continue
		}
		reaper.Track(cmd.Process.Pid)
		pids = append(pids, cmd.Process.Pid)
	}
	return pids
}

// Spawn runs a single action-bound command (the "spawn" key/button
// action), the interactive counterpart of Launch used for user-triggered
// launches like a terminal or launcher binding.
func Spawn(ctx context.Context, reaper *Reaper, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		log.WithError(err).WithField("cmd", argv).Warn("spawn: failed to launch")
		return err
	}
	reaper.Track(cmd.Process.Pid)
	return nil
}
