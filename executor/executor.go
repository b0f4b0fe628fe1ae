// Package executor runs shell commands on behalf of maintenance steps.
package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

const shellBin = "sh"

// SpawnExitCode marks a command that never ran: the shell could not be
// spawned or the process failed before producing an exit status.
const SpawnExitCode = -1

// Result is the observed outcome of a single command. Command failure is
// data, not a Go error: callers inspect the exit code.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor abstracts command execution so steps can be tested without
// touching the host system.
type Executor interface {
	// Run executes command via the shell and captures its output.
	Run(ctx context.Context, command string) Result
	// Stream executes command via the shell with its output attached to out.
	// When stdin is a terminal the command runs on a pty and keyboard input
	// is forwarded, so prompts (e.g. sudo asking for a password) work.
	Stream(ctx context.Context, command string, out io.Writer) Result
	// LookPath reports where file would resolve on PATH, like exec.LookPath.
	LookPath(file string) (string, error)
}

func New() Executor {
	return &shellExecutor{}
}

type shellExecutor struct{}

var _ Executor = (*shellExecutor)(nil)

func (e *shellExecutor) Run(ctx context.Context, command string) Result {
	cmd := exec.CommandContext(ctx, shellBin, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	res.ExitCode = exitCode(err)
	if res.ExitCode == SpawnExitCode && res.Stderr == "" && err != nil {
		res.Stderr = err.Error()
	}
	return res
}

func (e *shellExecutor) Stream(ctx context.Context, command string, out io.Writer) Result {
	cmd := exec.CommandContext(ctx, shellBin, "-c", command)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		// No pty available. Run attached to the writer instead.
		attached := exec.CommandContext(ctx, shellBin, "-c", command)
		attached.Stdout = out
		attached.Stderr = out
		return Result{ExitCode: exitCode(attached.Run())}
	}
	// Make sure to close the pty at the end.
	defer ptmx.Close()

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		// Handle pty size.
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGWINCH)
		go func() {
			for range ch {
				_ = pty.InheritSize(os.Stdin, ptmx)
			}
		}()
		ch <- syscall.SIGWINCH                        // Initial resize.
		defer func() { signal.Stop(ch); close(ch) }() // Cleanup signals when done.

		// Set stdin in raw mode so keystrokes reach the command unmangled.
		if oldState, err := term.MakeRaw(stdinFd); err == nil {
			defer term.Restore(stdinFd, oldState)
		}

		// Forward stdin through a cancelable reader: without it the copy
		// goroutine would block on the next read and steal input from
		// whatever reads os.Stdin after this command finishes.
		if cancelReader, err := cancelreader.NewReader(os.Stdin); err == nil {
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				io.Copy(ptmx, cancelReader)
			}()
			defer func() { cancelReader.Cancel(); wg.Wait() }()
		}
	}

	// Blocks until the command closes its side of the pty.
	io.Copy(out, ptmx)

	return Result{ExitCode: exitCode(cmd.Wait())}
}

func (e *shellExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			// Shell convention for signal deaths, e.g. 137 for SIGKILL.
			// ExitCode() would report -1 here, which SpawnExitCode owns.
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}
	return SpawnExitCode
}
