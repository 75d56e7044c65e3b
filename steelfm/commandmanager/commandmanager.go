// Package commandmanager runs local commands and captures their output.
package commandmanager

import (
	"context"
	"time"
)

// CommandConfig describes a single command invocation.
type CommandConfig struct {
	Command string
	Args    []string
}

// CommandResult encapsulates the results from a command execution.
type CommandResult struct {
	Command   string
	STDOUT    string
	STDERR    string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// CommandManager executes commands on the local system.
type CommandManager interface {
	Run(ctx context.Context, config CommandConfig) (CommandResult, error)
}
