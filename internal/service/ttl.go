package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

func (operator *KeyOperator) TTL(ctx context.Context, key string) (domain.TTLResult, error) {
	return operator.ttl(ctx, script.TTL, key)
}

func (operator *KeyOperator) PTTL(ctx context.Context, key string) (domain.TTLResult, error) {
	return operator.ttl(ctx, script.PTTL, key)
}

func (operator *KeyOperator) ttl(ctx context.Context, name script.Name, key string) (domain.TTLResult, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return domain.TTLResult{}, err
	}

	reply, err := operator.evaluate(ctx, name, []string{key}, nil)

	if hasError(err) {
		return domain.TTLResult{}, err
	}

	return traced(codec.TTL(string(name), reply))
}
