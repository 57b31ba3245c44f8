package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

// MaxSetRangeOffset is the largest offset the store accepts (2^29 - 1).
const MaxSetRangeOffset = 1<<29 - 1

// SetRange overwrites part of the string at key and returns its new length.
func (operator *StringOperator) SetRange(ctx context.Context, key string, offset uint32, value string) (int64, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return 0, err
	}

	if offset > MaxSetRangeOffset {
		return 0, fmt.Errorf("%w: offset %d exceeds %d", domain.ErrOutOfRange, offset, MaxSetRangeOffset)
	}

	reply, err := operator.command(ctx, "SETRANGE", key, strconv.FormatUint(uint64(offset), 10), value)

	if hasError(err) {
		return 0, err
	}

	return traced(codec.Integer("SETRANGE", reply))
}
