package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

// Append returns the length of the string after the append.
func (operator *StringOperator) Append(ctx context.Context, key, value string) (int64, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "APPEND", key, value)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("APPEND", reply))
}
