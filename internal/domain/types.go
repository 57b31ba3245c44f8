package domain

import (
	"context"
	"strconv"
	"time"
)

type (
	ReplyKind uint8

	// Reply is one RESP value as read from the store. Null is only meaningful
	// for bulk strings and arrays.
	Reply struct {
		Kind     ReplyKind
		Integer  int64
		Text     string
		Null     bool
		Elements []Reply
	}

	Connection interface {
		Evaluate(ctx context.Context, script string, keys []string, args []string) (Reply, error)
		Command(ctx context.Context, name string, args []string) (Reply, error)
	}

	SetOptions struct {
		Expiry    time.Duration
		KeepTTL   bool
		Behavior  WriteBehavior
		ReturnOld bool
	}

	CTX string
)

const (
	ReplyInteger ReplyKind = iota + 1
	ReplySimpleString
	ReplyBulkString
	ReplyError
	ReplyArray
)

const (
	OK = "OK"

	DB = CTX("DB")
	ID = CTX("ID")
)

var replyKindNames = map[ReplyKind]string{
	ReplyInteger:      "Integer",
	ReplySimpleString: "SimpleString",
	ReplyBulkString:   "BulkString",
	ReplyError:        "Error",
	ReplyArray:        "Array",
}

func (kind ReplyKind) String() string {
	if name, exists := replyKindNames[kind]; exists {
		return name
	}

	return "Unknown(" + strconv.Itoa(int(kind)) + ")"
}

func IntegerReply(value int64) Reply {
	return Reply{Kind: ReplyInteger, Integer: value}
}

func StatusReply(text string) Reply {
	return Reply{Kind: ReplySimpleString, Text: text}
}

func BulkReply(text string) Reply {
	return Reply{Kind: ReplyBulkString, Text: text}
}

func NullReply() Reply {
	return Reply{Kind: ReplyBulkString, Null: true}
}

func ArrayReply(elements ...Reply) Reply {
	return Reply{Kind: ReplyArray, Elements: elements}
}

func ErrorReply(message string) Reply {
	return Reply{Kind: ReplyError, Text: message}
}
