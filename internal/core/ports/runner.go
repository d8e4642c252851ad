package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// CommandRunner executes external commands.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes the command and waits for it to finish.
	//
	// A dry-run command is logged and reported as successful without spawning.
	// A non-zero exit yields a *domain.ExecutionError; cancellation of ctx yields
	// domain.ErrInterrupted. Failed commands are never retried.
	Run(ctx context.Context, cmd domain.Command) error
}
