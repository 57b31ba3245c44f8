package server

import (
	"context"
	"math"
	"strconv"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

var zeroValue = []byte("0")

// handleIncr serves INCR, DECR, INCRBY and DECRBY. The TTL of an existing
// key is kept.
func (server *Server) handleIncr(ctx context.Context, args [][]byte) domain.Reply {
	name := commandName(args)
	step := int64(1)

	if len(args) > twoArgs {
		parsed, ok := parseInt(args[secondArg])

		if !ok {
			return domain.ErrorReply(msgNotInteger)
		}

		step = parsed
	}

	if name == "DECR" || name == "DECRBY" {
		if step == math.MinInt64 {
			return domain.ErrorReply("ERR decrement would overflow")
		}

		step = -step
	}

	found, exists := server.counter(ctx, keyOf(args))
	current, ok := parseInt(found.value)

	if !ok {
		return domain.ErrorReply(msgNotInteger)
	}

	if (step > 0 && current > math.MaxInt64-step) || (step < 0 && current < math.MinInt64-step) {
		return domain.ErrorReply("ERR increment or decrement would overflow")
	}

	found.value = []byte(strconv.FormatInt(current+step, 10))
	server.keep(ctx, keyOf(args), found, exists)

	return domain.IntegerReply(current + step)
}

func (server *Server) handleIncrByFloat(ctx context.Context, args [][]byte) domain.Reply {
	step, ok := parseFloat(args[secondArg])

	if !ok {
		return domain.ErrorReply(msgNotFloat)
	}

	found, exists := server.counter(ctx, keyOf(args))
	current, ok := parseFloat(found.value)

	if !ok {
		return domain.ErrorReply(msgNotFloat)
	}

	result := current + step

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return domain.ErrorReply("ERR increment would produce NaN or Infinity")
	}

	formatted := formatFloat(result)
	found.value = []byte(formatted)
	server.keep(ctx, keyOf(args), found, exists)

	return domain.BulkReply(formatted)
}

// counter returns the entry a numeric command updates. A missing key reads
// as zero and is only stored once the update succeeds.
func (server *Server) counter(ctx context.Context, key string) (*entry, bool) {
	found, exists := server.keyspace.lookup(databaseOf(ctx), key)

	if !exists {
		return &entry{value: zeroValue}, false
	}

	return found, true
}

func (server *Server) keep(ctx context.Context, key string, updated *entry, exists bool) {
	if !exists {
		server.keyspace.store(databaseOf(ctx), key, updated)
	}
}
