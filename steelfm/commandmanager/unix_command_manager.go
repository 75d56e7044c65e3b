package commandmanager

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/steelcutops/steelfm/logger"
)

type UnixCommandManager struct {
	Logger logger.Logger
}

func (u *UnixCommandManager) log() logger.Logger {
	if u.Logger == nil {
		return logger.Discard()
	}
	return u.Logger
}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	return u.RunLocal(ctx, config)
}

// RunLocal runs the command and waits for it. A non-zero exit is reported
// both in ExitCode and as an error.
func (u *UnixCommandManager) RunLocal(ctx context.Context, config CommandConfig) (CommandResult, error) {
	u.log().Debug("Executing local command", "command", config.Command, "args", config.Args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Command:   config.Command,
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}
	if err != nil {
		u.log().Debug("Command failed", "command", config.Command, "exit_code", result.ExitCode, "stderr", result.STDERR)
		return result, fmt.Errorf("%s: %w", config.Command, err)
	}
	return result, nil
}

// IsNotFound reports whether err means the command binary does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

func getExitCode(err error) int {
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			status := exitError.Sys().(syscall.WaitStatus)
			return status.ExitStatus()
		}
		return -1
	}
	return 0
}
