package server

import (
	"context"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

// handleGetRange clamps both bounds like the store: negative offsets count
// from the end and an inverted range reads as empty.
func (server *Server) handleGetRange(ctx context.Context, args [][]byte) domain.Reply {
	start, startOK := parseInt(args[secondArg])
	end, endOK := parseInt(args[thirdArg])

	if !startOK || !endOK {
		return domain.ErrorReply(msgNotInteger)
	}

	found, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args))

	if !exists {
		return domain.BulkReply("")
	}

	size := int64(len(found.value))

	if start < 0 {
		start += size
	}

	if end < 0 {
		end += size
	}

	start, end = max(start, 0), max(end, 0)
	end = min(end, size-1)

	if size == 0 || start > end {
		return domain.BulkReply("")
	}

	return bulkReply(found.value[start : end+1])
}

func (server *Server) handleSetRange(ctx context.Context, args [][]byte) domain.Reply {
	offset, ok := parseInt(args[secondArg])

	if !ok {
		return domain.ErrorReply(msgNotInteger)
	}

	if offset < 0 {
		return domain.ErrorReply("ERR offset is out of range")
	}

	database := databaseOf(ctx)
	key := keyOf(args)
	patch := args[thirdArg]
	found, exists := server.keyspace.lookup(database, key)

	if !exists && len(patch) == 0 {
		return zeroReply
	}

	if offset+int64(len(patch)) > maxStringSize {
		return domain.ErrorReply(msgStringTooLong)
	}

	if !exists {
		found = &entry{}
		server.keyspace.store(database, key, found)
	}

	if len(patch) == 0 {
		return domain.IntegerReply(int64(len(found.value)))
	}

	if needed := int(offset) + len(patch); needed > len(found.value) {
		found.value = append(found.value, make([]byte, needed-len(found.value))...)
	}

	copy(found.value[offset:], patch)
	return domain.IntegerReply(int64(len(found.value)))
}

func (server *Server) handleStrLen(ctx context.Context, args [][]byte) domain.Reply {
	found, exists := server.keyspace.lookup(databaseOf(ctx), keyOf(args))

	if !exists {
		return zeroReply
	}

	return domain.IntegerReply(int64(len(found.value)))
}

func (server *Server) handleAppend(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)
	key := keyOf(args)
	found, exists := server.keyspace.lookup(database, key)

	if !exists {
		found = &entry{}
		server.keyspace.store(database, key, found)
	}

	if len(found.value)+len(args[secondArg]) > maxStringSize {
		return domain.ErrorReply(msgStringTooLong)
	}

	found.value = append(found.value, args[secondArg]...)
	return domain.IntegerReply(int64(len(found.value)))
}
