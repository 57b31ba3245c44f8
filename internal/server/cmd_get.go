package server

import (
	"context"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

func (server *Server) handleGet(ctx context.Context, args [][]byte) domain.Reply {
	found, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args))

	if !exists {
		return domain.NullReply()
	}

	return bulkReply(found.value)
}

func (server *Server) handleGetDel(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	found, exists := server.keyspace.lookup(database, keyOf(args))

	if !exists {
		return domain.NullReply()
	}

	delete(server.keyspace.databases[database], keyOf(args))
	return bulkReply(found.value)
}

// handleGetEx reads the key and then applies the requested TTL change. A
// deadline already in the past removes the key after the read.
func (server *Server) handleGetEx(ctx context.Context, args [][]byte) domain.Reply {
	options, failure, ok := server.parseSetOptions(args[secondArg:], "getex")

	if !ok {
		return failure
	}

	database := databaseOf(ctx)
	found, exists := server.keyspace.lookup(database, keyOf(args))

	if !exists {
		return domain.NullReply()
	}

	reply := bulkReply(found.value)

	switch {
	case options.persist:
		found.expireAt = time.Time{}
	case options.expiry && !options.deadline.After(server.keyspace.now()):
		delete(server.keyspace.databases[database], keyOf(args))
	case options.expiry:
		found.expireAt = options.deadline
	}

	return reply
}

func (server *Server) handleMGet(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	values := make([]domain.Reply, 0, len(args)-1)

	for _, key := range args[firstArg:] {
		found, exists := server.keyspace.lookup(database, string(key))

		if !exists {
			values = append(values, domain.NullReply())
			continue
		}

		values = append(values, bulkReply(found.value))
	}

	return domain.ArrayReply(values...)
}

// handleMSet serves MSET and MSETNX. MSETNX writes nothing when any key
// already exists.
func (server *Server) handleMSet(ctx context.Context, args [][]byte) domain.Reply {
	name := commandName(args)
	pairs := args[firstArg:]

	if len(pairs)%2 != 0 {
		return wrongArgs(name)
	}

	database := databaseOf(ctx)

	if name == "MSETNX" {
		for index := 0; index < len(pairs); index += 2 {
			if _, exists := server.keyspace.lookup(database, string(pairs[index])); exists {
				return zeroReply
			}
		}
	}

	for index := 0; index < len(pairs); index += 2 {
		server.keyspace.store(database, string(pairs[index]), &entry{value: clone(pairs[index+1])})
	}

	if name == "MSETNX" {
		return oneReply
	}

	return okReply
}
