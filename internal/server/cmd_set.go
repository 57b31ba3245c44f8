package server

import (
	"context"
	"strings"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

type setOptions struct {
	deadline time.Time
	expiry   bool
	keepTTL  bool
	persist  bool
	behavior domain.WriteBehavior
	get      bool
}

func (server *Server) handleSet(ctx context.Context, args [][]byte) domain.Reply {
	options, failure, ok := server.parseSetOptions(args[thirdArg:], "set")

	if !ok {
		return failure
	}

	database := databaseOf(ctx)
	key := keyOf(args)
	found, exists := server.keyspace.lookup(database, key)
	previous := domain.NullReply()

	if exists {
		previous = bulkReply(found.value)
	}

	skipped := (options.behavior == domain.WriteNotExists && exists) ||
		(options.behavior == domain.WriteExists && !exists)

	if !skipped {
		written := &entry{value: clone(args[secondArg]), expireAt: options.deadline}

		if options.keepTTL && exists {
			written.expireAt = found.expireAt
		}

		server.keyspace.store(database, key, written)
	}

	if options.get {
		return previous
	}

	if skipped {
		return domain.NullReply()
	}

	return okReply
}

func (server *Server) handleSetNX(ctx context.Context, args [][]byte) domain.Reply {
	database := databaseOf(ctx)

	if _, exists := server.keyspace.lookup(database, keyOf(args)); exists {
		return zeroReply
	}

	server.keyspace.store(database, keyOf(args), &entry{value: clone(args[secondArg])})
	return oneReply
}

// parseSetOptions reads the trailing options of SET and GETEX. The command
// name selects which options are legal.
func (server *Server) parseSetOptions(args [][]byte, command string) (setOptions, domain.Reply, bool) {
	var options setOptions

	now := server.keyspace.now()
	isSet := command == "set"

	for index := 0; index < len(args); index++ {
		token := strings.ToUpper(string(args[index]))

		switch {
		case isSet && token == domain.TokenNotExists && options.behavior == domain.WriteNone:
			options.behavior = domain.WriteNotExists
		case isSet && token == domain.TokenExists && options.behavior == domain.WriteNone:
			options.behavior = domain.WriteExists
		case isSet && token == "GET" && !options.get:
			options.get = true
		case isSet && token == "KEEPTTL" && !options.keepTTL && !options.expiry:
			options.keepTTL = true
		case !isSet && token == "PERSIST" && !options.persist && !options.expiry:
			options.persist = true
		case isExpiryToken(token) && !options.expiry && !options.keepTTL && !options.persist && index+1 < len(args):
			index++
			deadline, ok := expiryDeadline(token, args[index], now)

			if !ok {
				return options, errorReply(msgInvalidExpire, command), false
			}

			options.deadline = deadline
			options.expiry = true
		default:
			return options, domain.ErrorReply(msgSyntax), false
		}
	}

	return options, domain.Reply{}, true
}

func isExpiryToken(token string) bool {
	switch token {
	case "EX", "PX", "EXAT", "PXAT":
		return true
	}

	return false
}

func expiryDeadline(token string, raw []byte, now time.Time) (time.Time, bool) {
	value, ok := parseInt(raw)

	if !ok || value <= 0 {
		return time.Time{}, false
	}

	command := expireCommand{
		milliseconds: strings.HasPrefix(token, "P"),
		absolute:     strings.HasSuffix(token, "AT"),
	}

	return command.deadline(value, now)
}

func clone(value []byte) []byte {
	return append([]byte(nil), value...)
}
