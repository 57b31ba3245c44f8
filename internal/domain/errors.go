package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKey       = errors.New("invalid key")
	ErrSyntax           = errors.New("syntax error")
	ErrScriptNotFound   = errors.New("lua script not exists")
	ErrScriptEmpty      = errors.New("lua script content is empty")
	ErrUnsupportedReply = errors.New("unsupported reply")
	ErrOutOfRange       = errors.New("value out of range")
	ErrUnknownDataType  = errors.New("unknown data type")
	ErrCanceled         = errors.New("operation canceled")
	ErrNotImplemented   = errors.New("operator not implemented")
)

type (
	// UnsupportedReplyError reports a reply whose tag or nullability does not
	// match what the command documents.
	UnsupportedReplyError struct {
		Command string
		Kind    ReplyKind
		Null    bool
	}

	// ServerError is an error reply sent back by the store.
	ServerError struct {
		Command string
		Message string
	}
)

func NewUnsupportedReply(command string, reply Reply) *UnsupportedReplyError {
	return &UnsupportedReplyError{Command: command, Kind: reply.Kind, Null: reply.Null}
}

func (err *UnsupportedReplyError) Error() string {
	return fmt.Sprintf("%s return type is %s, value == null is %t", err.Command, err.Kind, err.Null)
}

func (err *UnsupportedReplyError) Is(target error) bool {
	return target == ErrUnsupportedReply
}

func (err *ServerError) Error() string {
	return err.Command + ": " + err.Message
}
