package domain

import "fmt"

type (
	TTLKind        int8
	ExpireTimeKind int8

	TTLResult struct {
		kind TTLKind
		ttl  int64
	}

	ExpireTimeResult struct {
		kind      ExpireTimeKind
		timestamp int64
	}

	// OperationResult separates "the operation ran" from the payload it
	// produced, so a skipped conditional write is not mistaken for an empty
	// value.
	OperationResult[T any] struct {
		Succeeded bool
		Data      T
	}

	// Outcome is the payload-free form of OperationResult.
	Outcome bool
)

const (
	KeyNotExists TTLKind = -2
	NoTTL        TTLKind = -1
	HasTTL       TTLKind = 1
)

const (
	TimestampKeyNotExists ExpireTimeKind = -2
	NoTimestamp           ExpireTimeKind = -1
	HasTimestamp          ExpireTimeKind = 1
)

func NewTTLResult(raw int64) (TTLResult, error) {
	switch {
	case raw == int64(KeyNotExists):
		return TTLResult{kind: KeyNotExists}, nil
	case raw == int64(NoTTL):
		return TTLResult{kind: NoTTL}, nil
	case raw >= 0:
		return TTLResult{kind: HasTTL, ttl: raw}, nil
	}

	return TTLResult{}, fmt.Errorf("%w: ttl %d", ErrOutOfRange, raw)
}

func (result TTLResult) Kind() TTLKind {
	return result.kind
}

func (result TTLResult) TTL() int64 {
	return result.ttl
}

func (result TTLResult) String() string {
	return fmt.Sprintf("%s(%d)", result.kind, result.ttl)
}

func (kind TTLKind) String() string {
	switch kind {
	case KeyNotExists:
		return "KeyNotExists"
	case NoTTL:
		return "NoTTL"
	case HasTTL:
		return "HasTTL"
	}

	return fmt.Sprintf("TTLKind(%d)", int8(kind))
}

func NewExpireTimeResult(raw int64) (ExpireTimeResult, error) {
	switch {
	case raw == int64(TimestampKeyNotExists):
		return ExpireTimeResult{kind: TimestampKeyNotExists}, nil
	case raw == int64(NoTimestamp):
		return ExpireTimeResult{kind: NoTimestamp}, nil
	case raw >= 0:
		return ExpireTimeResult{kind: HasTimestamp, timestamp: raw}, nil
	}

	return ExpireTimeResult{}, fmt.Errorf("%w: expire time %d", ErrOutOfRange, raw)
}

func (result ExpireTimeResult) Kind() ExpireTimeKind {
	return result.kind
}

func (result ExpireTimeResult) Timestamp() int64 {
	return result.timestamp
}

func (result ExpireTimeResult) String() string {
	return fmt.Sprintf("%s(%d)", result.kind, result.timestamp)
}

func (kind ExpireTimeKind) String() string {
	switch kind {
	case TimestampKeyNotExists:
		return "KeyNotExists"
	case NoTimestamp:
		return "NoTimestamp"
	case HasTimestamp:
		return "HasTimestamp"
	}

	return fmt.Sprintf("ExpireTimeKind(%d)", int8(kind))
}

func Succeeded[T any](data T) OperationResult[T] {
	return OperationResult[T]{Succeeded: true, Data: data}
}

func Failed[T any](data T) OperationResult[T] {
	return OperationResult[T]{Succeeded: false, Data: data}
}

// OutcomeOf drops the payload and keeps the success flag.
func OutcomeOf[T any](result OperationResult[T]) Outcome {
	return Outcome(result.Succeeded)
}

func (outcome Outcome) Succeeded() bool {
	return bool(outcome)
}
