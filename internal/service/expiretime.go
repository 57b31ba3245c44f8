package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

// ExpireTime returns the absolute unix time, in seconds, at which key expires.
func (operator *KeyOperator) ExpireTime(ctx context.Context, key string) (domain.ExpireTimeResult, error) {
	return operator.expireTime(ctx, script.ExpireTime, key)
}

func (operator *KeyOperator) PExpireTime(ctx context.Context, key string) (domain.ExpireTimeResult, error) {
	return operator.expireTime(ctx, script.PExpireTime, key)
}

func (operator *KeyOperator) expireTime(ctx context.Context, name script.Name, key string) (domain.ExpireTimeResult, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return domain.ExpireTimeResult{}, err
	}

	reply, err := operator.evaluate(ctx, name, []string{key}, nil)

	if hasError(err) {
		return domain.ExpireTimeResult{}, err
	}

	return traced(codec.ExpireTime(string(name), reply))
}
