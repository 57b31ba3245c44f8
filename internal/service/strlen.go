package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *StringOperator) StrLen(ctx context.Context, key string) (int64, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "STRLEN", key)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("STRLEN", reply))
}
