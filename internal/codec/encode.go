package codec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

const (
	noKeys = 0

	TokenKeepTTL = "KEEPTTL"
	TokenPX      = "PX"
	TokenGet     = "GET"
	TokenPersist = "PERSIST"
)

// ExpireArgs builds ARGV for the EXPIRE family. The behavior token is
// appended only when the behavior has one.
func ExpireArgs(value int64, behavior domain.ExpireBehavior) []string {
	args := []string{formatInt(value)}

	if token, ok := behavior.Token(); ok {
		args = append(args, token)
	}

	return args
}

// SplitDuration reports the value to send and whether it must go through
// the millisecond command. Only the millisecond component decides; anything
// below a millisecond is truncated.
func SplitDuration(duration time.Duration) (value int64, milliseconds bool) {
	if millisecondPart(duration) != 0 {
		return duration.Milliseconds(), true
	}

	return int64(duration / time.Second), false
}

// SplitTime applies the SplitDuration rule to an absolute time.
func SplitTime(moment time.Time) (value int64, milliseconds bool) {
	if moment.Nanosecond()/int(time.Millisecond) != 0 {
		return moment.UnixMilli(), true
	}

	return moment.Unix(), false
}

// SetArgs builds ARGV for the SET script: the value followed by the options
// that are actually in use.
func SetArgs(value string, options domain.SetOptions) ([]string, error) {
	if options.ReturnOld && options.Behavior == domain.WriteNotExists {
		return nil, fmt.Errorf("%w: GET cannot be combined with NX", domain.ErrSyntax)
	}

	args := []string{value}

	if options.KeepTTL {
		args = append(args, TokenKeepTTL)
	} else if hasExpiry(options.Expiry) {
		args = append(args, TokenPX, formatInt(options.Expiry.Milliseconds()))
	}

	if token, ok := options.Behavior.Token(); ok {
		args = append(args, token)
	}

	if options.ReturnOld {
		args = append(args, TokenGet)
	}

	return args, nil
}

// GetExArgs builds ARGV for GETEX. Without an expiry the TTL is dropped.
func GetExArgs(expiry time.Duration) []string {
	if hasExpiry(expiry) {
		return []string{TokenPX, formatInt(expiry.Milliseconds())}
	}

	return []string{TokenPersist}
}

// UnlinkArgs carries the number of keys the script iterates over.
func UnlinkArgs(keys []string) []string {
	return []string{strconv.Itoa(len(keys))}
}

func millisecondPart(duration time.Duration) time.Duration {
	return (duration % time.Second) / time.Millisecond
}

func hasExpiry(expiry time.Duration) bool {
	return expiry > 0
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
