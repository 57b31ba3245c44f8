package storage

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/logger"
)

var log = logger.Component("storage")

var (
	ErrClientClosed = errors.New("client is closed")
)

const (
	DefaultAddress     = "127.0.0.1:6379"
	DefaultPoolSize    = 8
	DefaultDialTimeout = 5 * time.Second
	MaxDatabaseIndex   = 15
)

type (
	Options struct {
		Address     string
		Password    string
		PoolSize    int
		DialTimeout time.Duration
	}

	// Client keeps a bounded pool of connections to one store. Connections
	// are authenticated once when dialed and switch database on checkout.
	Client struct {
		options Options
		dialer  net.Dialer
		idle    chan *conn
		slots   chan struct{}
		closed  atomic.Bool
	}
)

func NewClient(options Options) *Client {
	options = withDefaults(options)

	return &Client{
		options: options,
		dialer:  net.Dialer{Timeout: options.DialTimeout},
		idle:    make(chan *conn, options.PoolSize),
		slots:   make(chan struct{}, options.PoolSize),
	}
}

// Database returns a handle bound to the logical database index. Handles
// are cheap and share the client pool.
func (client *Client) Database(index int) *Database {
	return &Database{client: client, index: index}
}

func (client *Client) Ping(ctx context.Context) error {
	reply, err := client.Database(0).Command(ctx, "PING", nil)

	if hasError(err) {
		return err
	}

	if reply.Kind == domain.ReplyError {
		return &domain.ServerError{Command: "PING", Message: reply.Text}
	}

	return nil
}

func (client *Client) Close() error {
	if client.closed.Swap(true) {
		return nil
	}

	var errs []error

	for {
		select {
		case idle := <-client.idle:
			errs = append(errs, idle.Close())
		default:
			return errors.Join(errs...)
		}
	}
}

func (client *Client) acquire(ctx context.Context, database int) (*conn, error) {
	if client.closed.Load() {
		return nil, ErrClientClosed
	}

	if err := ctx.Err(); hasError(err) {
		return nil, err
	}

	select {
	case client.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	connection, err := client.checkout(ctx)

	if noError(err) {
		err = connection.selectDatabase(ctx, database)
	}

	if hasError(err) {
		if connection != nil {
			_ = connection.Close()
		}

		<-client.slots
		return nil, err
	}

	return connection, nil
}

func (client *Client) checkout(ctx context.Context) (*conn, error) {
	select {
	case idle := <-client.idle:
		return idle, nil
	default:
	}

	return client.dial(ctx)
}

func (client *Client) dial(ctx context.Context) (*conn, error) {
	raw, err := client.dialer.DialContext(ctx, "tcp", client.options.Address)

	if hasError(err) {
		return nil, err
	}

	connection := newConn(raw)
	log.Debug("store connection opened", "address", client.options.Address)

	if isEmpty(client.options.Password) {
		return connection, nil
	}

	if err = connection.authenticate(ctx, client.options.Password); hasError(err) {
		_ = connection.Close()
		return nil, err
	}

	return connection, nil
}

// release returns a healthy connection to the pool. Broken connections and
// connections released after Close are dropped.
func (client *Client) release(connection *conn, healthy bool) {
	defer func() { <-client.slots }()

	if !healthy || client.closed.Load() {
		log.Debug("store connection dropped", "healthy", healthy)
		_ = connection.Close()
		return
	}

	select {
	case client.idle <- connection:
	default:
		_ = connection.Close()
	}
}

func withDefaults(options Options) Options {
	if isEmpty(options.Address) {
		options.Address = DefaultAddress
	}

	if options.PoolSize <= 0 {
		options.PoolSize = DefaultPoolSize
	}

	if options.DialTimeout <= 0 {
		options.DialTimeout = DefaultDialTimeout
	}

	return options
}

// Connection is Database typed as the connection interface.
func (client *Client) Connection(index int) domain.Connection {
	return client.Database(index)
}
