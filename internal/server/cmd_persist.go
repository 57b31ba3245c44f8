package server

import (
	"context"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

func (server *Server) handlePersist(ctx context.Context, args [][]byte) domain.Reply {
	found, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args))

	if !exists || !found.volatile() {
		return zeroReply
	}

	found.expireAt = time.Time{}
	return oneReply
}

func (server *Server) handleType(ctx context.Context, args [][]byte) domain.Reply {
	if _, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args)); exists {
		return domain.StatusReply(domain.TypeString.String())
	}

	return domain.StatusReply(domain.TypeNone.String())
}

func (server *Server) handleRename(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	source, target := keyOf(args), string(args[secondArg])
	found, exists := server.keyspace.lookup(database, source)

	if !exists {
		return domain.ErrorReply(msgNoSuchKey)
	}

	if source == target {
		return okReply
	}

	delete(server.keyspace.databases[database], source)
	server.keyspace.store(database, target, found)

	return okReply
}
