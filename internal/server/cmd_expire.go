package server

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

type expireCommand struct {
	milliseconds bool
	absolute     bool
}

var expireCommands = map[string]expireCommand{
	"EXPIRE":    {},
	"PEXPIRE":   {milliseconds: true},
	"EXPIREAT":  {absolute: true},
	"PEXPIREAT": {milliseconds: true, absolute: true},
}

// handleExpire serves the EXPIRE family. A deadline in the past deletes the
// key and still counts as success.
func (server *Server) handleExpire(ctx context.Context, args [][]byte) domain.Reply {
	name := commandName(args)
	command := expireCommands[name]

	value, ok := parseInt(args[secondArg])

	if !ok {
		return domain.ErrorReply(msgNotInteger)
	}

	behavior := domain.ExpireNone

	if len(args) > thirdArg {
		parsed, err := domain.ParseExpireBehavior(strings.ToUpper(string(args[thirdArg])))

		if hasError(err) {
			return domain.ErrorReply("ERR Unsupported option " + string(args[thirdArg]))
		}

		behavior = parsed
	}

	now := server.keyspace.now()
	deadline, ok := command.deadline(value, now)

	if !ok {
		return errorReply(msgInvalidExpire, strings.ToLower(name))
	}

	database := databaseOf(ctx)
	found, exists := server.keyspace.lookup(database, keyOf(args))

	if !exists || !allowed(found, deadline, behavior) {
		return zeroReply
	}

	if !deadline.After(now) {
		delete(server.keyspace.databases[database], keyOf(args))
		return oneReply
	}

	found.expireAt = deadline
	return oneReply
}

func (command expireCommand) deadline(value int64, now time.Time) (time.Time, bool) {
	milliseconds := value

	if !command.milliseconds {
		if value > math.MaxInt64/1000 || value < math.MinInt64/1000 {
			return time.Time{}, false
		}

		milliseconds = value * 1000
	}

	if command.absolute {
		return time.UnixMilli(milliseconds), true
	}

	base := now.UnixMilli()

	if (milliseconds > 0 && base > math.MaxInt64-milliseconds) || (milliseconds < 0 && base < math.MinInt64-milliseconds) {
		return time.Time{}, false
	}

	return time.UnixMilli(base + milliseconds), true
}

// allowed applies NX/XX/GT/LT. A key without TTL behaves as an infinite TTL
// for GT and LT.
func allowed(found *entry, deadline time.Time, behavior domain.ExpireBehavior) bool {
	switch behavior {
	case domain.ExpireNotExists:
		return !found.volatile()
	case domain.ExpireExists:
		return found.volatile()
	case domain.ExpireGreaterThan:
		return found.volatile() && deadline.After(found.expireAt)
	case domain.ExpireLessThan:
		return !found.volatile() || deadline.Before(found.expireAt)
	}

	return true
}
