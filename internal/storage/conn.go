package storage

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/tidwall/redcon"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

const (
	readChunk       = 4096
	unknownDatabase = -1
)

var expired = time.Unix(1, 0)

type conn struct {
	net.Conn
	pending  []byte
	chunk    []byte
	database int
}

func newConn(raw net.Conn) *conn {
	return &conn{
		Conn:     raw,
		chunk:    make([]byte, readChunk),
		database: unknownDatabase,
	}
}

// do writes one command and reads exactly one reply. Any error leaves the
// connection in an unknown state and the caller must drop it.
func (connection *conn) do(ctx context.Context, args ...string) (domain.Reply, error) {
	deadline, _ := ctx.Deadline()

	if err := connection.SetDeadline(deadline); hasError(err) {
		return domain.Reply{}, err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = connection.SetDeadline(expired)
	})

	defer stop()

	if _, err := connection.Write(encodeCommand(args)); hasError(err) {
		return domain.Reply{}, contextual(ctx, err)
	}

	reply, err := connection.read()

	if hasError(err) {
		return domain.Reply{}, contextual(ctx, err)
	}

	return reply, nil
}

func (connection *conn) read() (domain.Reply, error) {
	for {
		if size, resp := redcon.ReadNextRESP(connection.pending); size > 0 {
			reply, err := toReply(resp)
			connection.consume(size)
			return reply, err
		}

		read, err := connection.Read(connection.chunk)

		if hasError(err) {
			return domain.Reply{}, err
		}

		connection.pending = append(connection.pending, connection.chunk[:read]...)
	}
}

func (connection *conn) consume(size int) {
	rest := len(connection.pending) - size

	if rest == 0 {
		connection.pending = connection.pending[:0]
		return
	}

	connection.pending = append(connection.pending[:0], connection.pending[size:]...)
}

func (connection *conn) authenticate(ctx context.Context, password string) error {
	return connection.expectOK(ctx, "AUTH", password)
}

func (connection *conn) selectDatabase(ctx context.Context, database int) error {
	if connection.database == database {
		return nil
	}

	if err := connection.expectOK(ctx, "SELECT", strconv.Itoa(database)); hasError(err) {
		return err
	}

	connection.database = database
	return nil
}

func (connection *conn) expectOK(ctx context.Context, args ...string) error {
	reply, err := connection.do(ctx, args...)

	if hasError(err) {
		return err
	}

	if reply.Kind == domain.ReplySimpleString && reply.Text == domain.OK {
		return nil
	}

	return &domain.ServerError{Command: args[0], Message: reply.Text}
}

func encodeCommand(args []string) []byte {
	packet := redcon.AppendArray(nil, len(args))

	for _, arg := range args {
		packet = redcon.AppendBulkString(packet, arg)
	}

	return packet
}

func contextual(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); hasError(ctxErr) {
		return ctxErr
	}

	return err
}
