package server

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

func (server *Server) handleDel(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	deleted := int64(0)

	for _, key := range args[firstArg:] {
		if server.keyspace.remove(database, string(key)) {
			deleted++
		}
	}

	return domain.IntegerReply(deleted)
}

// handleExists serves EXISTS and TOUCH; repeated keys are counted each time.
func (server *Server) handleExists(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	found := int64(0)

	for _, key := range args[firstArg:] {
		if _, exists := server.keyspace.lookup(database, string(key)); exists {
			found++
		}
	}

	return domain.IntegerReply(found)
}

func (server *Server) handleFlush(ctx context.Context, args [][]byte) domain.Reply {
	if commandName(args) == "FLUSHALL" {
		server.keyspace.flushAll()
		return okReply
	}

	server.keyspace.flush(databaseOf(ctx))
	return okReply
}
