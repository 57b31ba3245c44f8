package storage

import (
	"bytes"
	"fmt"

	"github.com/tidwall/redcon"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

var (
	nullBulk  = []byte("$-")
	nullArray = []byte("*-")
)

func toReply(resp redcon.RESP) (domain.Reply, error) {
	switch resp.Type {
	case redcon.Integer:
		return domain.IntegerReply(resp.Int()), nil
	case redcon.String:
		return domain.StatusReply(string(resp.Data)), nil
	case redcon.Error:
		return domain.ErrorReply(string(resp.Data)), nil
	case redcon.Bulk:
		if bytes.HasPrefix(resp.Raw, nullBulk) {
			return domain.NullReply(), nil
		}

		return domain.BulkReply(string(resp.Data)), nil
	case redcon.Array:
		return toArray(resp)
	}

	return domain.Reply{}, fmt.Errorf("unsupported RESP type %q", byte(resp.Type))
}

func toArray(resp redcon.RESP) (domain.Reply, error) {
	if bytes.HasPrefix(resp.Raw, nullArray) {
		return domain.Reply{Kind: domain.ReplyArray, Null: true}, nil
	}

	elements := make([]domain.Reply, 0, resp.Count)

	var err error

	resp.ForEach(func(element redcon.RESP) bool {
		var reply domain.Reply

		reply, err = toReply(element)
		elements = append(elements, reply)

		return noError(err)
	})

	if hasError(err) {
		return domain.Reply{}, err
	}

	return domain.ArrayReply(elements...), nil
}
