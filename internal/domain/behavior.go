package domain

import "fmt"

type (
	// ExpireBehavior selects the precondition of the EXPIRE family.
	ExpireBehavior uint8

	// WriteBehavior selects the precondition of SET.
	WriteBehavior uint8
)

const (
	ExpireNone ExpireBehavior = iota
	ExpireExists
	ExpireNotExists
	ExpireGreaterThan
	ExpireLessThan
)

const (
	WriteNone WriteBehavior = iota
	WriteExists
	WriteNotExists
)

const (
	TokenExists      = "XX"
	TokenNotExists   = "NX"
	TokenGreaterThan = "GT"
	TokenLessThan    = "LT"
)

var (
	expireTokens = map[ExpireBehavior]string{
		ExpireExists:      TokenExists,
		ExpireNotExists:   TokenNotExists,
		ExpireGreaterThan: TokenGreaterThan,
		ExpireLessThan:    TokenLessThan,
	}

	writeTokens = map[WriteBehavior]string{
		WriteExists:    TokenExists,
		WriteNotExists: TokenNotExists,
	}
)

// Token returns the argument sent to the store. ok is false for ExpireNone,
// in which case nothing must be sent.
func (behavior ExpireBehavior) Token() (token string, ok bool) {
	token, ok = expireTokens[behavior]
	return token, ok
}

func (behavior ExpireBehavior) String() string {
	if token, ok := behavior.Token(); ok {
		return token
	}

	return "NONE"
}

func ParseExpireBehavior(token string) (ExpireBehavior, error) {
	if token == "" {
		return ExpireNone, nil
	}

	for behavior, known := range expireTokens {
		if known == token {
			return behavior, nil
		}
	}

	return ExpireNone, fmt.Errorf("%w: unknown expire behavior %q", ErrSyntax, token)
}

// Token returns the argument sent to the store. ok is false for WriteNone.
func (behavior WriteBehavior) Token() (token string, ok bool) {
	token, ok = writeTokens[behavior]
	return token, ok
}

func (behavior WriteBehavior) String() string {
	if token, ok := behavior.Token(); ok {
		return token
	}

	return "NONE"
}

func ParseWriteBehavior(token string) (WriteBehavior, error) {
	if token == "" {
		return WriteNone, nil
	}

	for behavior, known := range writeTokens {
		if known == token {
			return behavior, nil
		}
	}

	return WriteNone, fmt.Errorf("%w: unknown write behavior %q", ErrSyntax, token)
}
