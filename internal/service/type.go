package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

func (operator *KeyOperator) Type(ctx context.Context, key string) (domain.DataType, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return domain.TypeNone, err
	}

	reply, err := operator.command(ctx, "TYPE", key)

	if hasError(err) {
		return domain.TypeNone, err
	}

	return traced(codec.DataType(reply))
}
