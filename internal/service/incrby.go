package service

import (
	"context"
	"strconv"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *StringOperator) IncrBy(ctx context.Context, key string, increment int64) (int64, error) {
	return operator.step(ctx, "INCRBY", key, increment)
}

func (operator *StringOperator) DecrBy(ctx context.Context, key string, decrement int64) (int64, error) {
	return operator.step(ctx, "DECRBY", key, decrement)
}

func (operator *StringOperator) IncrByFloat(ctx context.Context, key string, increment float64) (float64, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, "INCRBYFLOAT", key, strconv.FormatFloat(increment, 'f', -1, 64))

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Float("INCRBYFLOAT", reply))
}

func (operator *StringOperator) step(ctx context.Context, command, key string, amount int64) (int64, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return 0, err
	}

	reply, err := operator.command(ctx, command, key, strconv.FormatInt(amount, 10))

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer(command, reply))
}
