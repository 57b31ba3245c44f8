// Package keyop exposes typed operators over the key space and string
// commands of a Redis-compatible store.
package keyop

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/app"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/service"
	"github.com/luiz-simples/keyop.git/internal/storage"
)

type (
	Config         = app.Config
	BasicOperator  = app.BasicOperator
	KeyOperator    = service.KeyOperator
	StringOperator = service.StringOperator
	Client         = storage.Client
	Options        = storage.Options

	SetOptions       = domain.SetOptions
	ExpireBehavior   = domain.ExpireBehavior
	WriteBehavior    = domain.WriteBehavior
	TTLResult        = domain.TTLResult
	TTLKind          = domain.TTLKind
	ExpireTimeResult = domain.ExpireTimeResult
	ExpireTimeKind   = domain.ExpireTimeKind
	DataType         = domain.DataType
	Outcome          = domain.Outcome

	ServerError           = domain.ServerError
	UnsupportedReplyError = domain.UnsupportedReplyError
)

// OperationResult carries the payload of a read together with whether the
// read found something.
type OperationResult[T any] = domain.OperationResult[T]

const (
	ExpireNone        = domain.ExpireNone
	ExpireExists      = domain.ExpireExists
	ExpireNotExists   = domain.ExpireNotExists
	ExpireGreaterThan = domain.ExpireGreaterThan
	ExpireLessThan    = domain.ExpireLessThan

	WriteNone      = domain.WriteNone
	WriteExists    = domain.WriteExists
	WriteNotExists = domain.WriteNotExists

	KeyNotExists = domain.KeyNotExists
	NoTTL        = domain.NoTTL
	HasTTL       = domain.HasTTL

	TimestampKeyNotExists = domain.TimestampKeyNotExists
	NoTimestamp           = domain.NoTimestamp
	HasTimestamp          = domain.HasTimestamp
)

var (
	ErrInvalidKey       = domain.ErrInvalidKey
	ErrSyntax           = domain.ErrSyntax
	ErrScriptNotFound   = domain.ErrScriptNotFound
	ErrScriptEmpty      = domain.ErrScriptEmpty
	ErrUnsupportedReply = domain.ErrUnsupportedReply
	ErrOutOfRange       = domain.ErrOutOfRange
	ErrUnknownDataType  = domain.ErrUnknownDataType
	ErrCanceled         = domain.ErrCanceled
	ErrNotImplemented   = domain.ErrNotImplemented
	ErrInvalidConfig    = app.ErrInvalidConfig
	ErrClientClosed     = storage.ErrClientClosed
)

// LoadConfig reads .env files and KEYOP_* variables.
func LoadConfig() (Config, error) {
	app.InitConfig()
	return app.LoadConfig()
}

// Open validates config and returns the operator facade for its database
// together with the client that owns the connections. Close the client when
// done.
func Open(config Config) (*BasicOperator, *Client, error) {
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	client := storage.NewClient(config.Options())
	return app.NewBasicOperator(client, config), client, nil
}

func SetValue[T any](ctx context.Context, operator *StringOperator, key string, value T, options SetOptions) (Outcome, error) {
	return service.SetValue(ctx, operator, key, value, options)
}

func GetJSON[T any](ctx context.Context, operator *StringOperator, key string, fallback T) (T, error) {
	return service.GetJSON(ctx, operator, key, fallback)
}
