package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *KeyOperator) Touch(ctx context.Context, key string) (bool, error) {
	count, err := operator.TouchMany(ctx, key)
	return count > 0, err
}

func (operator *KeyOperator) TouchMany(ctx context.Context, keys ...string) (int64, error) {
	list, err := codec.KeyList(keys...)

	if hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "TOUCH", list...)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("TOUCH", reply))
}
