package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// Generator is a shell command whose stdout carries model output.
type Generator struct {
	Script  string            // run via bash -c after ExpandVars
	Dir     string            // working directory; empty means the current one
	Vars    map[string]string // expansion variables, also exported as MDFILES_<NAME>
	DotEnv  map[string]string // extra environment, usually from LoadDotEnv
	Timeout time.Duration
	Stderr  io.Writer
}

// Run starts the generator in its own process group and hands its stdout to
// consume. It returns the generator's exit code once both have finished.
// Cancelling ctx or hitting the timeout terminates the whole group.
func (g *Generator) Run(ctx context.Context, consume func(io.Reader) error) (int, error) {
	if g.Script == "" {
		return 0, fmt.Errorf("no generator command configured")
	}
	runCtx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	runCtx, abort := context.WithCancel(runCtx)
	defer abort()

	cmd := exec.CommandContext(runCtx, "bash", "-c", ExpandVars(g.Script, g.Vars))
	cmd.Dir = g.Dir
	cmd.Env = BuildEnv(g.DotEnv, g.Vars)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second
	cmd.Stderr = g.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, err
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting generator: %w", err)
	}

	consumeErr := consume(stdout)
	if consumeErr != nil {
		abort()
	}
	waitErr := cmd.Wait()

	if consumeErr != nil {
		return 0, consumeErr
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("generator timed out after %s", g.Timeout)
	}
	return exitCode(waitErr)
}
