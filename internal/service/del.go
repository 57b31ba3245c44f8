package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

// Del removes key and reports whether it existed.
func (operator *KeyOperator) Del(ctx context.Context, key string) (bool, error) {
	deleted, err := operator.DelMany(ctx, key)
	return deleted == 1, err
}

func (operator *KeyOperator) DelMany(ctx context.Context, keys ...string) (int64, error) {
	list, err := codec.KeyList(keys...)

	if hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "DEL", list...)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("DEL", reply))
}
