package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *KeyOperator) Exists(ctx context.Context, key string) (bool, error) {
	count, err := operator.ExistsMany(ctx, key)
	return count > 0, err
}

// ExistsMany counts how many of keys exist; a key repeated in keys is
// counted each time.
func (operator *KeyOperator) ExistsMany(ctx context.Context, keys ...string) (int64, error) {
	list, err := codec.KeyList(keys...)

	if hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "EXISTS", list...)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("EXISTS", reply))
}
