package server

import (
	"context"
	"strings"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

type CommandHandler func(context.Context, [][]byte) domain.Reply

type CommandMetadata struct {
	Name    string
	MinArgs int
	MaxArgs int
	Handler CommandHandler
	Aliases []string
}

type CommandRegistry struct {
	commands map[string]*CommandMetadata
	aliases  map[string]string
}

func NewCommandRegistry(server *Server) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]*CommandMetadata),
		aliases:  make(map[string]string),
	}

	registry.registerCommands(server)
	return registry
}

// registerCommands declares arity the way the store does: MinArgs counts the
// command name and MaxArgs of -1 means variadic.
func (registry *CommandRegistry) registerCommands(server *Server) {
	commands := []*CommandMetadata{
		{Name: "PING", MinArgs: 1, MaxArgs: 2, Handler: handlePing},
		{Name: "EXISTS", MinArgs: 2, MaxArgs: -1, Handler: server.handleExists},
		{Name: "DEL", MinArgs: 2, MaxArgs: -1, Handler: server.handleDel, Aliases: []string{"UNLINK"}},
		{Name: "TOUCH", MinArgs: 2, MaxArgs: -1, Handler: server.handleExists},
		{Name: "PERSIST", MinArgs: 2, MaxArgs: 2, Handler: server.handlePersist},
		{Name: "TYPE", MinArgs: 2, MaxArgs: 2, Handler: server.handleType},
		{Name: "RENAME", MinArgs: 3, MaxArgs: 3, Handler: server.handleRename},
		{Name: "EXPIRE", MinArgs: 3, MaxArgs: 4, Handler: server.handleExpire},
		{Name: "PEXPIRE", MinArgs: 3, MaxArgs: 4, Handler: server.handleExpire},
		{Name: "EXPIREAT", MinArgs: 3, MaxArgs: 4, Handler: server.handleExpire},
		{Name: "PEXPIREAT", MinArgs: 3, MaxArgs: 4, Handler: server.handleExpire},
		{Name: "TTL", MinArgs: 2, MaxArgs: 2, Handler: server.handleTTL},
		{Name: "PTTL", MinArgs: 2, MaxArgs: 2, Handler: server.handleTTL},
		{Name: "EXPIRETIME", MinArgs: 2, MaxArgs: 2, Handler: server.handleTTL},
		{Name: "PEXPIRETIME", MinArgs: 2, MaxArgs: 2, Handler: server.handleTTL},
		{Name: "GET", MinArgs: 2, MaxArgs: 2, Handler: server.handleGet},
		{Name: "GETDEL", MinArgs: 2, MaxArgs: 2, Handler: server.handleGetDel},
		{Name: "GETEX", MinArgs: 2, MaxArgs: 4, Handler: server.handleGetEx},
		{Name: "SET", MinArgs: 3, MaxArgs: -1, Handler: server.handleSet},
		{Name: "SETNX", MinArgs: 3, MaxArgs: 3, Handler: server.handleSetNX},
		{Name: "GETRANGE", MinArgs: 4, MaxArgs: 4, Handler: server.handleGetRange, Aliases: []string{"SUBSTR"}},
		{Name: "SETRANGE", MinArgs: 4, MaxArgs: 4, Handler: server.handleSetRange},
		{Name: "MGET", MinArgs: 2, MaxArgs: -1, Handler: server.handleMGet},
		{Name: "MSET", MinArgs: 3, MaxArgs: -1, Handler: server.handleMSet},
		{Name: "MSETNX", MinArgs: 3, MaxArgs: -1, Handler: server.handleMSet},
		{Name: "STRLEN", MinArgs: 2, MaxArgs: 2, Handler: server.handleStrLen},
		{Name: "APPEND", MinArgs: 3, MaxArgs: 3, Handler: server.handleAppend},
		{Name: "INCR", MinArgs: 2, MaxArgs: 2, Handler: server.handleIncr},
		{Name: "DECR", MinArgs: 2, MaxArgs: 2, Handler: server.handleIncr},
		{Name: "INCRBY", MinArgs: 3, MaxArgs: 3, Handler: server.handleIncr},
		{Name: "DECRBY", MinArgs: 3, MaxArgs: 3, Handler: server.handleIncr},
		{Name: "INCRBYFLOAT", MinArgs: 3, MaxArgs: 3, Handler: server.handleIncrByFloat},
		{Name: "FLUSHDB", MinArgs: 1, MaxArgs: 2, Handler: server.handleFlush},
		{Name: "FLUSHALL", MinArgs: 1, MaxArgs: 2, Handler: server.handleFlush},
		{Name: "EVAL", MinArgs: 3, MaxArgs: -1, Handler: server.handleEval},
		{Name: "EVALSHA", MinArgs: 3, MaxArgs: -1, Handler: server.handleEval},
		{Name: "SCRIPT", MinArgs: 2, MaxArgs: -1, Handler: server.handleScript},
	}

	for _, cmd := range commands {
		registry.registerCommand(cmd)
	}
}

func (registry *CommandRegistry) registerCommand(metadata *CommandMetadata) {
	registry.commands[metadata.Name] = metadata

	for _, alias := range metadata.Aliases {
		registry.aliases[alias] = metadata.Name
	}
}

func (registry *CommandRegistry) GetCommand(name string) (*CommandMetadata, bool) {
	name = strings.ToUpper(name)

	if realName, isAlias := registry.aliases[name]; isAlias {
		name = realName
	}

	cmd, exists := registry.commands[name]
	return cmd, exists
}

func (registry *CommandRegistry) ValidateArgs(args [][]byte, metadata *CommandMetadata) bool {
	argCount := len(args)

	if argCount < metadata.MinArgs {
		return false
	}

	return metadata.MaxArgs < 0 || argCount <= metadata.MaxArgs
}
