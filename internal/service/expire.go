package service

import (
	"context"
	"time"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

// Expire sets a TTL in seconds. It reports false when the key is missing or
// behavior was not satisfied.
func (operator *KeyOperator) Expire(ctx context.Context, key string, seconds int64, behavior domain.ExpireBehavior) (bool, error) {
	return operator.expire(ctx, script.Expire, key, seconds, behavior)
}

func (operator *KeyOperator) PExpire(ctx context.Context, key string, milliseconds int64, behavior domain.ExpireBehavior) (bool, error) {
	return operator.expire(ctx, script.PExpire, key, milliseconds, behavior)
}

func (operator *KeyOperator) ExpireAt(ctx context.Context, key string, timestamp int64, behavior domain.ExpireBehavior) (bool, error) {
	return operator.expire(ctx, script.ExpireAt, key, timestamp, behavior)
}

func (operator *KeyOperator) PExpireAt(ctx context.Context, key string, timestamp int64, behavior domain.ExpireBehavior) (bool, error) {
	return operator.expire(ctx, script.PExpireAt, key, timestamp, behavior)
}

// ExpireIn picks PEXPIRE when ttl has a millisecond component and EXPIRE
// otherwise.
func (operator *KeyOperator) ExpireIn(ctx context.Context, key string, ttl time.Duration, behavior domain.ExpireBehavior) (bool, error) {
	value, milliseconds := codec.SplitDuration(ttl)

	if milliseconds {
		return operator.PExpire(ctx, key, value, behavior)
	}

	return operator.Expire(ctx, key, value, behavior)
}

// ExpireAtTime picks PEXPIREAT when moment has a millisecond component and
// EXPIREAT otherwise.
func (operator *KeyOperator) ExpireAtTime(ctx context.Context, key string, moment time.Time, behavior domain.ExpireBehavior) (bool, error) {
	value, milliseconds := codec.SplitTime(moment)

	if milliseconds {
		return operator.PExpireAt(ctx, key, value, behavior)
	}

	return operator.ExpireAt(ctx, key, value, behavior)
}

func (operator *KeyOperator) expire(ctx context.Context, name script.Name, key string, value int64, behavior domain.ExpireBehavior) (bool, error) {
	if err := codec.ValidateKey(key); hasError(err) {
		return false, err
	}

	args := codec.ExpireArgs(value, behavior)
	reply, err := operator.evaluate(ctx, name, []string{key}, args)

	if hasError(err) {
		return false, err
	}

	return traced(codec.Flag(string(name), reply))
}
