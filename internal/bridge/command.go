package bridge

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check their own fields.
type Validator interface {
	Validate() error
}

// Command is an operation the front end can invoke by name.
// Commands must be safe for concurrent use.
type Command interface {
	// Name returns the identifier used in the "cmd" field of a request
	Name() string

	// Description returns a human-readable description
	Description() string

	// Execute decodes args, runs the command and returns a JSON-encodable result
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// Executor runs a command with a typed request.
type Executor[Req, Resp any] func(context.Context, Req) (Resp, error)

// BaseCommand adapts a typed Executor to the Command interface. It owns
// argument decoding and validation so each command is a single function.
type BaseCommand[Req, Resp any] struct {
	name        string
	description string
	executor    Executor[Req, Resp]
}

// NewBaseCommand creates a Command backed by executor.
func NewBaseCommand[Req, Resp any](name, description string, executor Executor[Req, Resp]) *BaseCommand[Req, Resp] {
	return &BaseCommand[Req, Resp]{
		name:        name,
		description: description,
		executor:    executor,
	}
}

// Name implements Command
func (b *BaseCommand[Req, Resp]) Name() string {
	return b.name
}

// Description implements Command
func (b *BaseCommand[Req, Resp]) Description() string {
	return b.description
}

// Execute implements Command.
//
// Decoding and validation failures are wrapped with context. Errors from the
// executor are returned unchanged so their text reaches the caller as is.
func (b *BaseCommand[Req, Resp]) Execute(ctx context.Context, args map[string]any) (any, error) {
	var req Req

	if err := mapstructure.Decode(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	resp, err := b.executor(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
