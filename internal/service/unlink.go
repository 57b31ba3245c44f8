package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/script"
)

// Unlink is UnlinkMany over a single key; it succeeds only when exactly one
// key was removed.
func (operator *KeyOperator) Unlink(ctx context.Context, key string) (bool, error) {
	count, err := operator.UnlinkMany(ctx, key)
	return count == 1, err
}

// UnlinkMany removes keys in one script evaluation and returns how many
// existed.
func (operator *KeyOperator) UnlinkMany(ctx context.Context, keys ...string) (int64, error) {
	list, err := codec.KeyList(keys...)

	if hasError(err) {
		return 0, err
	}

	reply, err := operator.evaluate(ctx, script.Unlink, list, codec.UnlinkArgs(list))

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer(string(script.Unlink), reply))
}
