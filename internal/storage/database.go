package storage

import (
	"context"
	"strconv"
	"strings"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

const noScriptPrefix = "NOSCRIPT"

// Database is a Connection bound to one logical database of the store.
type Database struct {
	client *Client
	index  int
}

var _ domain.Connection = (*Database)(nil)

func (database *Database) Index() int {
	return database.index
}

// Evaluate runs source by digest first and sends the full source only when
// the store does not have it cached yet.
func (database *Database) Evaluate(ctx context.Context, source string, keys []string, args []string) (domain.Reply, error) {
	connection, err := database.client.acquire(ctx, database.index)

	if hasError(err) {
		return domain.Reply{}, err
	}

	digest := script.Digest(source)
	reply, err := connection.do(ctx, evalArgs("EVALSHA", digest, keys, args)...)

	if noError(err) && isNoScript(reply) {
		log.Debug("script not cached, sending source", "sha", digest)
		reply, err = connection.do(ctx, evalArgs("EVAL", source, keys, args)...)
	}

	database.client.release(connection, noError(err))
	return reply, err
}

func (database *Database) Command(ctx context.Context, name string, args []string) (domain.Reply, error) {
	connection, err := database.client.acquire(ctx, database.index)

	if hasError(err) {
		return domain.Reply{}, err
	}

	reply, err := connection.do(ctx, append([]string{name}, args...)...)

	database.client.release(connection, noError(err))
	return reply, err
}

func evalArgs(command, body string, keys []string, args []string) []string {
	packet := make([]string, 0, 3+len(keys)+len(args))
	packet = append(packet, command, body, strconv.Itoa(len(keys)))
	packet = append(packet, keys...)
	return append(packet, args...)
}

func isNoScript(reply domain.Reply) bool {
	return reply.Kind == domain.ReplyError && strings.HasPrefix(reply.Text, noScriptPrefix)
}
