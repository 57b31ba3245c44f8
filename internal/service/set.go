package service

import (
	"context"
	"encoding/json"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

// Set writes value under key. Succeeded is false when the write behavior was
// not met. With ReturnOld, Data carries the previous value ("" if none).
func (operator *StringOperator) Set(ctx context.Context, key, value string, options domain.SetOptions) (domain.OperationResult[string], error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return domain.Failed(""), err
	}

	args, err := codec.SetArgs(value, options)

	if hasError(err) {
		return domain.Failed(""), err
	}

	reply, err := operator.evaluate(ctx, script.Set, []string{key}, args)

	if hasError(err) {
		return domain.Failed(""), err
	}

	return traced(codec.Set(reply, options))
}

// SetValue stores value as JSON. The previous value is never decoded back,
// only whether the write happened is reported.
func SetValue[T any](ctx context.Context, operator *StringOperator, key string, value T, options domain.SetOptions) (domain.Outcome, error) {
	encoded, err := json.Marshal(value)

	if hasError(err) {
		return false, err
	}

	result, err := operator.Set(ctx, key, string(encoded), options)

	if hasError(err) {
		return false, err
	}

	return domain.OutcomeOf(result), nil
}
