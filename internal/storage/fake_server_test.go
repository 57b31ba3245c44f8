package storage_test

import (
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/redcon"
)

// fakeServer answers canned replies so every RESP shape can be produced on
// demand. It records the commands it saw.
type fakeServer struct {
	server   *redcon.Server
	password string
	selects  atomic.Int64
	evalSHA  atomic.Int64
	eval     atomic.Int64
	accepted atomic.Int64
	mutex    sync.Mutex
	last     []string
}

func startFakeServer(address, password string) *fakeServer {
	fake := &fakeServer{password: password}
	fake.server = redcon.NewServer(address, fake.handle, fake.accept, nil)

	go func() {
		defer GinkgoRecover()
		fake.server.ListenAndServe()
	}()

	Eventually(func() error {
		conn, err := net.Dial("tcp", address)

		if err == nil {
			conn.Close()
		}

		return err
	}, "5s", "20ms").Should(Succeed())

	DeferCleanup(func() {
		fake.server.Close()
	})

	return fake
}

func (fake *fakeServer) accept(conn redcon.Conn) bool {
	fake.accepted.Add(1)
	return true
}

func (fake *fakeServer) lastCommand() []string {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	return fake.last
}

func (fake *fakeServer) handle(conn redcon.Conn, cmd redcon.Command) {
	args := make([]string, len(cmd.Args))

	for index, arg := range cmd.Args {
		args[index] = string(arg)
	}

	fake.mutex.Lock()
	fake.last = args
	fake.mutex.Unlock()

	switch strings.ToUpper(args[0]) {
	case "AUTH":
		if args[1] != fake.password {
			conn.WriteError("WRONGPASS invalid username-password pair or user is disabled.")
			return
		}

		conn.WriteString("OK")
	case "SELECT":
		fake.selects.Add(1)
		conn.WriteString("OK")
	case "PING":
		conn.WriteString("PONG")
	case "INT":
		conn.WriteInt64(42)
	case "STATUS":
		conn.WriteString("OK")
	case "BULK":
		conn.WriteBulkString("hello")
	case "EMPTY":
		conn.WriteBulkString("")
	case "NULL":
		conn.WriteNull()
	case "FAIL":
		conn.WriteError("ERR boom")
	case "ARRAY":
		conn.WriteArray(3)
		conn.WriteBulkString("a")
		conn.WriteNull()
		conn.WriteInt64(7)
	case "LARGE":
		conn.WriteBulkString(strings.Repeat("x", 64*1024))
	case "SLOW":
		time.Sleep(300 * time.Millisecond)
		conn.WriteString("OK")
	case "EVALSHA":
		fake.evalSHA.Add(1)
		conn.WriteError("NOSCRIPT No matching script. Please use EVAL.")
	case "EVAL":
		fake.eval.Add(1)
		conn.WriteBulkString(args[1])
	default:
		conn.WriteError("ERR unknown command '" + args[0] + "'")
	}
}
