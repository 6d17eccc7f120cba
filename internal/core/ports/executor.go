// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Command is an external process invocation.
type Command struct {
	// Args is the argv; Args[0] is the program.
	Args []string
	// Dir is the absolute working directory.
	Dir string
	// Env holds overrides applied on top of the process environment.
	Env map[string]string
}

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd to completion, streaming its output to stdout and stderr.
	//
	// It returns an error wrapping domain.ErrCommandFailed with the exit code
	// when the command exits unsuccessfully.
	Execute(ctx context.Context, cmd *Command, stdout, stderr io.Writer) error
}
