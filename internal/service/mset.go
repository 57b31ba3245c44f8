package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

func (operator *StringOperator) MSet(ctx context.Context, values map[string]string) error {
	args, err := pairs(values)

	if hasError(err) {
		return err
	}

	reply, err := operator.command(ctx, "MSET", args...)

	if hasError(err) {
		return err
	}

	return reportShape(codec.Status("MSET", reply))
}

// MSetNX writes values only if none of the keys exist.
func (operator *StringOperator) MSetNX(ctx context.Context, values map[string]string) (bool, error) {
	args, err := pairs(values)

	if hasError(err) {
		return false, err
	}

	reply, err := operator.command(ctx, "MSETNX", args...)

	if hasError(err) {
		return false, err
	}

	return traced(codec.Flag("MSETNX", reply))
}

// pairs flattens values in key order so the command is deterministic.
func pairs(values map[string]string) ([]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: key collection is empty", domain.ErrInvalidKey)
	}

	keys := make([]string, 0, len(values))

	for key := range values {
		keys = append(keys, key)
	}

	if err := codec.ValidateKeys(keys); hasError(err) {
		return nil, err
	}

	slices.Sort(keys)
	args := make([]string, 0, len(values)*2)

	for _, key := range keys {
		args = append(args, key, values[key])
	}

	return args, nil
}
