package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

// MGet reads every key; missing keys map to "".
func (operator *StringOperator) MGet(ctx context.Context, keys ...string) (domain.OperationResult[map[string]string], error) {
	list, err := codec.KeyList(keys...)

	if hasError(err) {
		return domain.Failed[map[string]string](nil), err
	}

	reply, err := operator.command(ctx, "MGET", list...)

	if hasError(err) {
		return domain.Failed[map[string]string](nil), err
	}

	values, err := traced(codec.OptionalStrings("MGET", reply, len(list)))

	if hasError(err) {
		return domain.Failed[map[string]string](nil), err
	}

	data := make(map[string]string, len(list))

	for index, key := range list {
		data[key] = values[index]
	}

	return domain.Succeeded(data), nil
}
