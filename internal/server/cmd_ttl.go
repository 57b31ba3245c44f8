package server

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

const (
	replyKeyNotExists = -2
	replyNoTTL        = -1
)

// handleTTL serves TTL, PTTL, EXPIRETIME and PEXPIRETIME.
func (server *Server) handleTTL(ctx context.Context, args [][]byte) domain.Reply {
	found, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args))

	if !exists {
		return domain.IntegerReply(replyKeyNotExists)
	}

	if !found.volatile() {
		return domain.IntegerReply(replyNoTTL)
	}

	switch commandName(args) {
	case "PTTL":
		return domain.IntegerReply(found.expireAt.Sub(server.keyspace.now()).Milliseconds())
	case "EXPIRETIME":
		return domain.IntegerReply(roundSeconds(found.expireAt.UnixMilli()))
	case "PEXPIRETIME":
		return domain.IntegerReply(found.expireAt.UnixMilli())
	}

	return domain.IntegerReply(roundSeconds(found.expireAt.Sub(server.keyspace.now()).Milliseconds()))
}
