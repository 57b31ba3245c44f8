package codec

import (
	"strconv"
	"strings"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

// Integer accepts only a non-null integer reply.
func Integer(command string, reply domain.Reply) (int64, error) {
	if isErrorReply(reply) {
		return 0, serverError(command, reply)
	}

	if reply.Kind == domain.ReplyInteger && !reply.Null {
		return reply.Integer, nil
	}

	return 0, domain.NewUnsupportedReply(command, reply)
}

// Flag decodes the 1/0 integer reply of conditional commands.
func Flag(command string, reply domain.Reply) (bool, error) {
	value, err := Integer(command, reply)

	if hasError(err) {
		return false, err
	}

	return value == 1, nil
}

func TTL(command string, reply domain.Reply) (domain.TTLResult, error) {
	value, err := Integer(command, reply)

	if hasError(err) {
		return domain.TTLResult{}, err
	}

	return domain.NewTTLResult(value)
}

func ExpireTime(command string, reply domain.Reply) (domain.ExpireTimeResult, error) {
	value, err := Integer(command, reply)

	if hasError(err) {
		return domain.ExpireTimeResult{}, err
	}

	return domain.NewExpireTimeResult(value)
}

// Set decodes the reply of the SET script. With GET the store answers with
// the old value regardless of whether the write happened, so a null reply is
// only a failure when XX was requested.
func Set(reply domain.Reply, options domain.SetOptions) (domain.OperationResult[string], error) {
	const command = "SET"

	if isErrorReply(reply) {
		return domain.Failed(""), serverError(command, reply)
	}

	if options.ReturnOld {
		if reply.Kind != domain.ReplyBulkString {
			return domain.Failed(""), domain.NewUnsupportedReply(command, reply)
		}

		if reply.Null && options.Behavior == domain.WriteExists {
			return domain.Failed(""), nil
		}

		return domain.Succeeded(reply.Text), nil
	}

	if reply.Kind == domain.ReplySimpleString && !reply.Null && strings.EqualFold(reply.Text, domain.OK) {
		return domain.Succeeded(""), nil
	}

	if reply.Kind == domain.ReplyBulkString && reply.Null {
		return domain.Failed(""), nil
	}

	return domain.Failed(""), domain.NewUnsupportedReply(command, reply)
}

// OptionalString treats a null reply as the empty string.
func OptionalString(command string, reply domain.Reply) (string, error) {
	if isErrorReply(reply) {
		return "", serverError(command, reply)
	}

	if isTextReply(reply) {
		return reply.Text, nil
	}

	return "", domain.NewUnsupportedReply(command, reply)
}

// Status accepts the OK status reply of commands such as RENAME and MSET.
func Status(command string, reply domain.Reply) error {
	if isErrorReply(reply) {
		return serverError(command, reply)
	}

	if reply.Kind == domain.ReplySimpleString && strings.EqualFold(reply.Text, domain.OK) {
		return nil
	}

	return domain.NewUnsupportedReply(command, reply)
}

func DataType(reply domain.Reply) (domain.DataType, error) {
	const command = "TYPE"

	if isErrorReply(reply) {
		return domain.TypeNone, serverError(command, reply)
	}

	if reply.Kind != domain.ReplySimpleString {
		return domain.TypeNone, domain.NewUnsupportedReply(command, reply)
	}

	return domain.ParseDataType(reply.Text)
}

func Float(command string, reply domain.Reply) (float64, error) {
	if isErrorReply(reply) {
		return 0, serverError(command, reply)
	}

	if !isTextReply(reply) || reply.Null {
		return 0, domain.NewUnsupportedReply(command, reply)
	}

	return strconv.ParseFloat(reply.Text, 64)
}

func isErrorReply(reply domain.Reply) bool {
	return reply.Kind == domain.ReplyError
}

func isTextReply(reply domain.Reply) bool {
	return reply.Kind == domain.ReplyBulkString || reply.Kind == domain.ReplySimpleString
}

func serverError(command string, reply domain.Reply) error {
	return &domain.ServerError{Command: command, Message: reply.Text}
}

// OptionalStrings decodes an array of bulk strings; null members become "".
func OptionalStrings(command string, reply domain.Reply, expected int) ([]string, error) {
	if isErrorReply(reply) {
		return nil, serverError(command, reply)
	}

	if reply.Kind != domain.ReplyArray || reply.Null || len(reply.Elements) != expected {
		return nil, domain.NewUnsupportedReply(command, reply)
	}

	values := make([]string, expected)

	for index, element := range reply.Elements {
		value, err := OptionalString(command, element)

		if hasError(err) {
			return nil, err
		}

		values[index] = value
	}

	return values, nil
}
