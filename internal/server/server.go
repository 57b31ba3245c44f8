package server

import (
	"context"
	"crypto/subtle"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tidwall/redcon"

	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/logger"
	"github.com/luiz-simples/keyop.git/internal/script"
)

var log = logger.Component("server")

const (
	nodeID          = 1
	cleanupInterval = time.Second
)

type (
	Config struct {
		Address  string
		Password string
		Scripts  *script.Registry
	}

	// Server emulates the subset of the store that the operators use,
	// including the scripts they evaluate.
	Server struct {
		config   Config
		rcon     *redcon.Server
		keyspace *Keyspace
		registry *CommandRegistry
		scripts  *ScriptEngine
		node     *snowflake.Node
		sessions *xsync.MapOf[int64, *session]
		done     chan struct{}
		closing  sync.Once
	}

	session struct {
		id            int64
		database      int
		authenticated bool
	}
)

func New(config Config) (*Server, error) {
	node, err := snowflake.NewNode(nodeID)

	if hasError(err) {
		return nil, err
	}

	if config.Scripts == nil {
		config.Scripts = script.Default()
	}

	server := &Server{
		config:   config,
		keyspace: NewKeyspace(),
		node:     node,
		sessions: xsync.NewMapOf[int64, *session](),
		done:     make(chan struct{}),
	}

	server.registry = NewCommandRegistry(server)
	server.scripts, err = NewScriptEngine(context.Background(), server, config.Scripts)

	if hasError(err) {
		return nil, err
	}

	server.rcon = redcon.NewServer(
		config.Address,
		server.OnHandler,
		server.OnAccept,
		server.OnClosed,
	)

	return server, nil
}

func (server *Server) ListenAndServe() error {
	go server.expireLoop()

	log.Info("store emulator listening", "address", server.config.Address)
	return server.rcon.ListenAndServe()
}

func (server *Server) Keyspace() *Keyspace {
	return server.keyspace
}

// Sessions counts the connected clients.
func (server *Server) Sessions() int {
	return server.sessions.Size()
}

func (server *Server) Close() error {
	server.closing.Do(func() { close(server.done) })

	server.sessions.Clear()
	return server.rcon.Close()
}

func (server *Server) OnAccept(conn redcon.Conn) bool {
	current := &session{
		id:            server.node.Generate().Int64(),
		authenticated: len(server.config.Password) == 0,
	}

	conn.SetContext(current)

	server.sessions.Store(current.id, current)

	log.Debug("client connected", "id", current.id, "remote", conn.RemoteAddr())
	return true
}

func (server *Server) OnClosed(conn redcon.Conn, err error) {
	current, ok := conn.Context().(*session)

	if !ok {
		return
	}

	server.sessions.Delete(current.id)

	if hasError(err) {
		log.Debug("client disconnected", "id", current.id, logger.Err(err))
	}
}

func (server *Server) OnHandler(conn redcon.Conn, cmd redcon.Command) {
	if emptyArgs(cmd) {
		conn.WriteError("ERR empty command")
		return
	}

	current, ok := conn.Context().(*session)

	if !ok {
		conn.WriteError("ERR invalid connection context")
		return
	}

	writeReply(conn, server.serve(current, cmd.Args))
}

func (server *Server) serve(current *session, args [][]byte) domain.Reply {
	name := commandName(args)

	if name == "AUTH" {
		return server.authenticate(current, args)
	}

	if !current.authenticated {
		return domain.ErrorReply(msgNoAuth)
	}

	if name == "SELECT" {
		return selectDatabase(current, args)
	}

	return server.execute(withSession(context.Background(), current), args)
}

// execute runs one command atomically against the keyspace.
func (server *Server) execute(ctx context.Context, args [][]byte) domain.Reply {
	server.keyspace.Lock()
	defer server.keyspace.Unlock()

	return server.call(ctx, args)
}

// call dispatches without locking; scripts use it for nested commands.
func (server *Server) call(ctx context.Context, args [][]byte) domain.Reply {
	name := commandName(args)
	metadata, exists := server.registry.GetCommand(name)

	if !exists {
		return errorReply(msgUnknown, strings.ToLower(name))
	}

	if !server.registry.ValidateArgs(args, metadata) {
		return wrongArgs(name)
	}

	return metadata.Handler(ctx, args)
}

func (server *Server) authenticate(current *session, args [][]byte) domain.Reply {
	if len(args) != twoArgs && len(args) != thirdArg {
		return wrongArgs("AUTH")
	}

	if len(server.config.Password) == 0 {
		return domain.ErrorReply("ERR AUTH <password> called without any password configured for the default user. Are you sure your configuration is correct?")
	}

	password := args[len(args)-1]

	if subtle.ConstantTimeCompare(password, []byte(server.config.Password)) != 1 {
		return domain.ErrorReply("WRONGPASS invalid username-password pair or user is disabled.")
	}

	current.authenticated = true
	return okReply
}

func selectDatabase(current *session, args [][]byte) domain.Reply {
	if len(args) != twoArgs {
		return wrongArgs("SELECT")
	}

	index, err := strconv.Atoi(string(args[firstArg]))

	if hasError(err) {
		return domain.ErrorReply(msgNotInteger)
	}

	if index < 0 || index >= DatabaseCount {
		return domain.ErrorReply("ERR DB index is out of range")
	}

	current.database = index
	return okReply
}

func (server *Server) expireLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-server.done:
			return
		case <-ticker.C:
			server.keyspace.Lock()
			removed := server.keyspace.sweep()
			server.keyspace.Unlock()

			if removed > 0 {
				log.Debug("expired keys removed", "count", removed)
			}
		}
	}
}
