package app

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
	"github.com/luiz-simples/keyop.git/internal/service"
	"github.com/luiz-simples/keyop.git/internal/storage"
)

type (
	// Connector hands out a connection bound to one logical database.
	Connector interface {
		Connection(database int) domain.Connection
	}

	// BasicOperator groups the operators of one database. Each operator is
	// built on first access and shared afterwards.
	BasicOperator struct {
		connector  Connector
		database   int
		registry   *script.Registry
		connection func() domain.Connection
		keys       lazy[service.KeyOperator]
		strings    lazy[service.StringOperator]
	}

	lazy[T any] struct {
		value atomic.Pointer[T]
		gate  sync.Mutex
	}
)

var _ Connector = (*storage.Client)(nil)

func NewBasicOperator(connector Connector, config Config) *BasicOperator {
	operator := &BasicOperator{
		connector: connector,
		database:  config.Database,
		registry:  config.Scripts(),
	}

	operator.connection = sync.OnceValue(func() domain.Connection {
		return operator.connector.Connection(operator.database)
	})

	return operator
}

func (operator *BasicOperator) Database() int {
	return operator.database
}

func (operator *BasicOperator) Key() *service.KeyOperator {
	return operator.keys.get(func() *service.KeyOperator {
		return service.NewKeyOperator(operator.connection(), operator.registry)
	})
}

func (operator *BasicOperator) String() *service.StringOperator {
	return operator.strings.get(func() *service.StringOperator {
		return service.NewStringOperator(operator.connection(), operator.registry)
	})
}

func (operator *BasicOperator) Hash() error {
	return notImplemented("hash")
}

func (operator *BasicOperator) Set() error {
	return notImplemented("set")
}

func (operator *BasicOperator) SortedSet() error {
	return notImplemented("sorted set")
}

func (operator *BasicOperator) List() error {
	return notImplemented("list")
}

func notImplemented(family string) error {
	return fmt.Errorf("%w: %s operator", domain.ErrNotImplemented, family)
}

func (cell *lazy[T]) get(build func() *T) *T {
	if value := cell.value.Load(); value != nil {
		return value
	}

	cell.gate.Lock()
	defer cell.gate.Unlock()

	if value := cell.value.Load(); value != nil {
		return value
	}

	value := build()
	cell.value.Store(value)

	return value
}
