package service

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/codec"
)

func (operator *KeyOperator) Rename(ctx context.Context, key, newKey string) error {
	if err := codec.ValidateKeys([]string{key, newKey}); hasError(err) {
		return err
	}

	reply, err := operator.command(ctx, "RENAME", key, newKey)

	if hasError(err) {
		return err
	}

	return reportShape(codec.Status("RENAME", reply))
}
