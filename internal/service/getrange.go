package service

import (
	"context"
	"strconv"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *StringOperator) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return "", err
	}

	reply, err := operator.command(ctx, "GETRANGE", key, strconv.FormatInt(start, 10), strconv.FormatInt(end, 10))

	if hasError(err) {
		return "", err
	}

	return traced(codec.OptionalString("GETRANGE", reply))
}
