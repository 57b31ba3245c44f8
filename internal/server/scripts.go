package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/script"
)

const (
	msgNoScript       = "NOSCRIPT No matching script. Please use EVAL."
	msgUnknownScript  = "ERR script is not supported by this server"
	msgNegativeKeys   = "ERR Number of keys can't be negative"
	msgTooManyKeys    = "ERR Number of keys can't be greater than number of args"
	scriptHeaderCount = 3
)

type (
	nativeScript func(ctx context.Context, keys, args [][]byte) domain.Reply

	// ScriptEngine runs the known scripts natively, keyed by their digest.
	// Its state is guarded by the keyspace lock like every other command.
	ScriptEngine struct {
		server *Server
		native map[string]nativeScript
		loaded map[string]bool
	}
)

func NewScriptEngine(ctx context.Context, server *Server, registry *script.Registry) (*ScriptEngine, error) {
	engine := &ScriptEngine{
		server: server,
		native: make(map[string]nativeScript),
		loaded: make(map[string]bool),
	}

	for _, name := range script.Names() {
		source, err := registry.Load(ctx, name)

		if hasError(err) {
			return nil, err
		}

		engine.native[script.Digest(source)] = engine.implementation(name)
	}

	return engine, nil
}

func (engine *ScriptEngine) implementation(name script.Name) nativeScript {
	if name == script.Unlink {
		return engine.unlink
	}

	command := []byte(name)

	return func(ctx context.Context, keys, args [][]byte) domain.Reply {
		if len(keys) == noArgs {
			return domain.ErrorReply(msgTooManyKeys)
		}

		call := append([][]byte{command, keys[0]}, args...)
		return engine.server.call(ctx, call)
	}
}

// unlink removes the first ARGV[1] keys one by one and sums the results.
func (engine *ScriptEngine) unlink(ctx context.Context, keys, args [][]byte) domain.Reply {
	if len(args) == noArgs {
		return domain.ErrorReply(msgSyntax)
	}

	count, ok := parseInt(args[0])

	if !ok || count > int64(len(keys)) {
		return domain.ErrorReply(msgNotInteger)
	}

	removed := int64(0)

	for _, key := range keys[:max(count, 0)] {
		removed += engine.server.call(ctx, [][]byte{[]byte("UNLINK"), key}).Integer
	}

	return domain.IntegerReply(removed)
}

func (engine *ScriptEngine) run(ctx context.Context, digest string, header [][]byte) domain.Reply {
	count, err := strconv.Atoi(string(header[secondArg]))

	if hasError(err) {
		return domain.ErrorReply(msgNotInteger)
	}

	rest := header[scriptHeaderCount:]

	if count < 0 {
		return domain.ErrorReply(msgNegativeKeys)
	}

	if count > len(rest) {
		return domain.ErrorReply(msgTooManyKeys)
	}

	return engine.native[digest](ctx, rest[:count], rest[count:])
}

// handleEval serves EVAL and EVALSHA. EVAL caches the digest so that later
// EVALSHA calls succeed; EVALSHA alone never learns a script.
func (server *Server) handleEval(ctx context.Context, args [][]byte) domain.Reply {
	engine := server.scripts

	if commandName(args) == "EVALSHA" {
		digest := strings.ToLower(string(args[firstArg]))

		if !engine.loaded[digest] {
			return domain.ErrorReply(msgNoScript)
		}

		return engine.run(ctx, digest, args)
	}

	digest := script.Digest(string(args[firstArg]))

	if _, known := engine.native[digest]; !known {
		return domain.ErrorReply(msgUnknownScript)
	}

	engine.loaded[digest] = true
	return engine.run(ctx, digest, args)
}

func (server *Server) handleScript(_ context.Context, args [][]byte) domain.Reply {
	engine := server.scripts

	switch strings.ToUpper(string(args[firstArg])) {
	case "LOAD":
		if len(args) != thirdArg {
			return wrongArgs("SCRIPT|LOAD")
		}

		digest := script.Digest(string(args[secondArg]))

		if _, known := engine.native[digest]; !known {
			return domain.ErrorReply(msgUnknownScript)
		}

		engine.loaded[digest] = true
		return domain.BulkReply(digest)
	case "EXISTS":
		found := make([]domain.Reply, 0, len(args)-twoArgs)

		for _, digest := range args[secondArg:] {
			found = append(found, flagReply(engine.loaded[strings.ToLower(string(digest))]))
		}

		return domain.ArrayReply(found...)
	case "FLUSH":
		clear(engine.loaded)
		return okReply
	}

	return domain.ErrorReply(msgSyntax)
}
