package service

import (
	"context"
	"time"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/script"
)

// GetEx reads key and resets its TTL to expiry. Without an expiry the TTL is
// removed. A missing key reads as "".
func (operator *StringOperator) GetEx(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return "", err
	}

	reply, err := operator.evaluate(ctx, script.GetEx, []string{key}, codec.GetExArgs(expiry))

	if hasError(err) {
		return "", err
	}

	return traced(codec.OptionalString(string(script.GetEx), reply))
}
