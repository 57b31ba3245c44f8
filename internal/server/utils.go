package server

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

const (
	noArgs    = 0
	singleArg = 1
	twoArgs   = 2
	firstArg  = 1
	secondArg = 2
	thirdArg  = 3

	maxStringSize = 512 << 20

	msgSyntax        = "ERR syntax error"
	msgNotInteger    = "ERR value is not an integer or out of range"
	msgNotFloat      = "ERR value is not a valid float"
	msgNoSuchKey     = "ERR no such key"
	msgInvalidExpire = "ERR invalid expire time in '%s' command"
	msgWrongArgs     = "ERR wrong number of arguments for '%s' command"
	msgUnknown       = "ERR unknown command '%s'"
	msgNoAuth        = "NOAUTH Authentication required."
	msgStringTooLong = "ERR string exceeds maximum allowed size (proto-max-bulk-len)"
)

var (
	okReply   = domain.StatusReply(domain.OK)
	zeroReply = domain.IntegerReply(0)
	oneReply  = domain.IntegerReply(1)
)

func hasError(err error) bool {
	return err != nil
}

func errorReply(format string, args ...any) domain.Reply {
	return domain.ErrorReply(fmt.Sprintf(format, args...))
}

func wrongArgs(name string) domain.Reply {
	return errorReply(msgWrongArgs, strings.ToLower(name))
}

func flagReply(flag bool) domain.Reply {
	if flag {
		return oneReply
	}

	return zeroReply
}

func bulkReply(value []byte) domain.Reply {
	return domain.BulkReply(string(value))
}

func emptyArgs(cmd redcon.Command) bool {
	return len(cmd.Args) == noArgs
}

func commandName(args [][]byte) string {
	return strings.ToUpper(string(args[0]))
}

func keyOf(args [][]byte) string {
	return string(args[firstArg])
}

func parseInt(raw []byte) (int64, bool) {
	value, err := strconv.ParseInt(string(raw), 10, 64)
	return value, !hasError(err)
}

func parseFloat(raw []byte) (float64, bool) {
	value, err := strconv.ParseFloat(string(raw), 64)
	return value, !hasError(err) && !math.IsNaN(value) && !math.IsInf(value, 0)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func databaseOf(ctx context.Context) int {
	database, _ := ctx.Value(domain.DB).(int)
	return database
}

func withSession(ctx context.Context, session *session) context.Context {
	ctx = context.WithValue(ctx, domain.ID, session.id)
	return context.WithValue(ctx, domain.DB, session.database)
}


// roundSeconds rounds a millisecond amount to the nearest second the way
// the store reports TTL and EXPIRETIME.
func roundSeconds(milliseconds int64) int64 {
	return (milliseconds + 500) / 1000
}

func writeReply(conn redcon.Conn, reply domain.Reply) {
	switch reply.Kind {
	case domain.ReplyInteger:
		conn.WriteInt64(reply.Integer)
	case domain.ReplySimpleString:
		conn.WriteString(reply.Text)
	case domain.ReplyError:
		conn.WriteError(reply.Text)
	case domain.ReplyArray:
		if reply.Null {
			conn.WriteNull()
			return
		}

		conn.WriteArray(len(reply.Elements))

		for _, element := range reply.Elements {
			writeReply(conn, element)
		}
	default:
		if reply.Null {
			conn.WriteNull()
			return
		}

		conn.WriteBulkString(reply.Text)
	}
}

func handlePing(_ context.Context, args [][]byte) domain.Reply {
	if len(args) == singleArg {
		return domain.StatusReply("PONG")
	}

	return bulkReply(args[firstArg])
}
