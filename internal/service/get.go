package service

import (
	"context"
	"encoding/json"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

// Get reads key. Succeeded is false when the key does not exist.
func (operator *StringOperator) Get(ctx context.Context, key string) (domain.OperationResult[string], error) {
	return operator.read(ctx, "GET", key)
}

// GetDel reads key and removes it.
func (operator *StringOperator) GetDel(ctx context.Context, key string) (domain.OperationResult[string], error) {
	return operator.read(ctx, "GETDEL", key)
}

// GetJSON decodes the JSON stored at key, or returns fallback when the key
// does not exist.
func GetJSON[T any](ctx context.Context, operator *StringOperator, key string, fallback T) (T, error) {
	result, err := operator.Get(ctx, key)

	if hasError(err) || !result.Succeeded {
		return fallback, err
	}

	var value T

	if err = json.Unmarshal([]byte(result.Data), &value); hasError(err) {
		return fallback, err
	}

	return value, nil
}

func (operator *StringOperator) read(ctx context.Context, command, key string) (domain.OperationResult[string], error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return domain.Failed(""), err
	}

	reply, err := operator.command(ctx, command, key)

	if hasError(err) {
		return domain.Failed(""), err
	}

	value, err := traced(codec.OptionalString(command, reply))

	if hasError(err) {
		return domain.Failed(""), err
	}

	if reply.Null {
		return domain.Failed(""), nil
	}

	return domain.Succeeded(value), nil
}
