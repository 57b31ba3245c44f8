package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

// Persist drops the TTL of key. It reports false when the key is missing or
// has no TTL.
func (operator *KeyOperator) Persist(ctx context.Context, key string) (bool, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return false, err
	}

	reply, err := operator.command(ctx, "PERSIST", key)

	if hasError(err) {
		return false, err
	}

	return traced(codec.Flag("PERSIST", reply))
}
