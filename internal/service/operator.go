package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/logger"
	"github.com/luiz-simples/keyop.git/internal/script"
)

var log = logger.Component("service")

type (
	Reply = domain.Reply

	// executor is shared by every operator: scripted commands go through
	// evaluate, single primitives through command.
	executor struct {
		conn     domain.Connection
		registry *script.Registry
	}

	KeyOperator struct {
		executor
	}

	StringOperator struct {
		executor
	}
)

func NewKeyOperator(conn domain.Connection, registry *script.Registry) *KeyOperator {
	return &KeyOperator{executor: newExecutor(conn, registry)}
}

func NewStringOperator(conn domain.Connection, registry *script.Registry) *StringOperator {
	return &StringOperator{executor: newExecutor(conn, registry)}
}

func newExecutor(conn domain.Connection, registry *script.Registry) executor {
	if registry == nil {
		registry = script.Default()
	}

	return executor{conn: conn, registry: registry}
}

func (executor *executor) evaluate(ctx context.Context, name script.Name, keys []string, args []string) (Reply, error) {
	if err := checkContext(ctx); hasError(err) {
		return Reply{}, err
	}

	source, err := executor.registry.Load(ctx, name)

	if hasError(err) {
		return Reply{}, err
	}

	if err = checkContext(ctx); hasError(err) {
		return Reply{}, err
	}

	return executor.conn.Evaluate(ctx, source, keys, args)
}

func (executor *executor) command(ctx context.Context, name string, args ...string) (Reply, error) {
	if err := checkContext(ctx); hasError(err) {
		return Reply{}, err
	}

	return executor.conn.Command(ctx, name, args)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); hasError(err) {
		return fmt.Errorf("%w: %w", domain.ErrCanceled, err)
	}

	return nil
}

// traced logs replies that break a command's contract; they usually point at
// a server version mismatch rather than a caller mistake.
func traced[T any](value T, err error) (T, error) {
	return value, reportShape(err)
}

func reportShape(err error) error {
	if errors.Is(err, domain.ErrUnsupportedReply) {
		log.Warn("unexpected reply shape", logger.Err(err))
	}

	return err
}

func hasError(err error) bool {
	return err != nil
}
