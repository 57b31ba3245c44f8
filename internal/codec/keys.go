package codec

import (
	"fmt"
	"strings"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

func ValidateKey(key string) error {
	if isBlank(key) {
		return fmt.Errorf("%w: key is blank", domain.ErrInvalidKey)
	}

	return nil
}

// ValidateKeys rejects an empty collection and any blank member with the
// same error.
func ValidateKeys(keys []string) error {
	if len(keys) == noKeys {
		return fmt.Errorf("%w: key collection is empty", domain.ErrInvalidKey)
	}

	for index, key := range keys {
		if isBlank(key) {
			return fmt.Errorf("%w: key at position %d is blank", domain.ErrInvalidKey, index)
		}
	}

	return nil
}

// KeyList validates keys and returns an independent copy ready to be sent.
func KeyList(keys ...string) ([]string, error) {
	if err := ValidateKeys(keys); hasError(err) {
		return nil, err
	}

	list := make([]string, len(keys))
	copy(list, keys)

	return list, nil
}

func isBlank(key string) bool {
	return len(strings.TrimSpace(key)) == 0
}

func hasError(err error) bool {
	return err != nil
}
