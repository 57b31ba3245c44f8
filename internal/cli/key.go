package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

type expireFunc func(ctx context.Context, key string, value int64, behavior domain.ExpireBehavior) (bool, error)

var (
	// KeyCommands groups the key space operations.
	KeyCommands = &cobra.Command{
		Use:                "key",
		Short:              "Key space operations (expiry, existence, removal)",
		PersistentPreRunE:  connect,
		PersistentPostRunE: disconnect,
	}

	existsCmd = &cobra.Command{
		Use:   "exists [key...]",
		Short: "Reports whether a key exists, or counts existing keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return countOrFlag(cmd, args, operator.Key().Exists, operator.Key().ExistsMany)
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key...]",
		Short: "Deletes keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return countOrFlag(cmd, args, operator.Key().Del, operator.Key().DelMany)
		},
	}
	touchCmd = &cobra.Command{
		Use:   "touch [key...]",
		Short: "Updates the last access time of keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return countOrFlag(cmd, args, operator.Key().Touch, operator.Key().TouchMany)
		},
	}
	unlinkCmd = &cobra.Command{
		Use:   "unlink [key...]",
		Short: "Removes keys through the unlink script",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return countOrFlag(cmd, args, operator.Key().Unlink, operator.Key().UnlinkMany)
		},
	}
	persistCmd = &cobra.Command{
		Use:   "persist [key]",
		Short: "Removes the expiry of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := operator.Key().Persist(cmd.Context(), args[0])

			if hasError(err) {
				return err
			}

			write(cmd, removed)
			return nil
		},
	}
	typeCmd = &cobra.Command{
		Use:   "type [key]",
		Short: "Prints the data type stored at a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataType, err := operator.Key().Type(cmd.Context(), args[0])

			if hasError(err) {
				return err
			}

			write(cmd, dataType)
			return nil
		},
	}
	renameCmd = &cobra.Command{
		Use:   "rename [key] [newkey]",
		Short: "Renames a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := operator.Key().Rename(cmd.Context(), args[0], args[1]); hasError(err) {
				return err
			}

			write(cmd, "OK")
			return nil
		},
	}
	expireInCmd = &cobra.Command{
		Use:   "expire-in [key] [duration]",
		Short: "Sets a relative expiry such as 1500ms or 10s",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := time.ParseDuration(args[1])

			if hasError(err) {
				return fmt.Errorf("duration must look like 1500ms or 10s: %w", err)
			}

			behavior, err := expireBehavior(cmd)

			if hasError(err) {
				return err
			}

			applied, err := operator.Key().ExpireIn(cmd.Context(), args[0], ttl, behavior)

			if hasError(err) {
				return err
			}

			write(cmd, applied)
			return nil
		},
	}
	expireAtTimeCmd = &cobra.Command{
		Use:   "expire-at-time [key] [rfc3339]",
		Short: "Sets an absolute expiry from an RFC 3339 timestamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			moment, err := time.Parse(time.RFC3339Nano, args[1])

			if hasError(err) {
				return fmt.Errorf("timestamp must be RFC 3339: %w", err)
			}

			behavior, err := expireBehavior(cmd)

			if hasError(err) {
				return err
			}

			applied, err := operator.Key().ExpireAtTime(cmd.Context(), args[0], moment, behavior)

			if hasError(err) {
				return err
			}

			write(cmd, applied)
			return nil
		},
	}
	ttlCmd = &cobra.Command{
		Use:   "ttl [key]",
		Short: "Prints the remaining time to live in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, args[0], operator.Key().TTL)
		},
	}
	pttlCmd = &cobra.Command{
		Use:   "pttl [key]",
		Short: "Prints the remaining time to live in milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, args[0], operator.Key().PTTL)
		},
	}
	expireTimeCmd = &cobra.Command{
		Use:   "expiretime [key]",
		Short: "Prints the absolute expiry as a unix timestamp in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, args[0], operator.Key().ExpireTime)
		},
	}
	pexpireTimeCmd = &cobra.Command{
		Use:   "pexpiretime [key]",
		Short: "Prints the absolute expiry as a unix timestamp in milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd, args[0], operator.Key().PExpireTime)
		},
	}
)

func init() {
	KeyCommands.AddCommand(existsCmd)
	KeyCommands.AddCommand(delCmd)
	KeyCommands.AddCommand(touchCmd)
	KeyCommands.AddCommand(unlinkCmd)
	KeyCommands.AddCommand(persistCmd)
	KeyCommands.AddCommand(typeCmd)
	KeyCommands.AddCommand(renameCmd)
	KeyCommands.AddCommand(expireInCmd)
	KeyCommands.AddCommand(expireAtTimeCmd)
	KeyCommands.AddCommand(ttlCmd)
	KeyCommands.AddCommand(pttlCmd)
	KeyCommands.AddCommand(expireTimeCmd)
	KeyCommands.AddCommand(pexpireTimeCmd)

	KeyCommands.AddCommand(expireCommand("expire", "seconds", "Sets a relative expiry in seconds",
		func(ctx context.Context, key string, value int64, behavior domain.ExpireBehavior) (bool, error) {
			return operator.Key().Expire(ctx, key, value, behavior)
		}))
	KeyCommands.AddCommand(expireCommand("pexpire", "milliseconds", "Sets a relative expiry in milliseconds",
		func(ctx context.Context, key string, value int64, behavior domain.ExpireBehavior) (bool, error) {
			return operator.Key().PExpire(ctx, key, value, behavior)
		}))
	KeyCommands.AddCommand(expireCommand("expireat", "timestamp", "Sets an absolute expiry in unix seconds",
		func(ctx context.Context, key string, value int64, behavior domain.ExpireBehavior) (bool, error) {
			return operator.Key().ExpireAt(ctx, key, value, behavior)
		}))
	KeyCommands.AddCommand(expireCommand("pexpireat", "timestamp", "Sets an absolute expiry in unix milliseconds",
		func(ctx context.Context, key string, value int64, behavior domain.ExpireBehavior) (bool, error) {
			return operator.Key().PExpireAt(ctx, key, value, behavior)
		}))

	for _, cmd := range KeyCommands.Commands() {
		if isExpiryCommand(cmd) {
			cmd.Flags().String(flagBehavior, "", "condition: NX, XX, GT or LT")
		}
	}
}

// expireCommand builds one of the four integer EXPIRE variants.
func expireCommand(name, unit, short string, expire expireFunc) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s [key] [%s]", name, unit),
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseInt(unit, args[1])

			if hasError(err) {
				return err
			}

			behavior, err := expireBehavior(cmd)

			if hasError(err) {
				return err
			}

			applied, err := expire(cmd.Context(), args[0], value, behavior)

			if hasError(err) {
				return err
			}

			write(cmd, applied)
			return nil
		},
	}
}

func isExpiryCommand(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "expire", "pexpire", "expireat", "pexpireat", "expire-in", "expire-at-time":
		return true
	}

	return false
}

// countOrFlag prints a flag for a single key and a count for several.
func countOrFlag(
	cmd *cobra.Command,
	keys []string,
	single func(context.Context, string) (bool, error),
	many func(context.Context, ...string) (int64, error),
) error {
	if len(keys) == 1 {
		found, err := single(cmd.Context(), keys[0])

		if hasError(err) {
			return err
		}

		write(cmd, found)
		return nil
	}

	count, err := many(cmd.Context(), keys...)

	if hasError(err) {
		return err
	}

	write(cmd, count)
	return nil
}

func printResult[T fmt.Stringer](cmd *cobra.Command, key string, read func(context.Context, string) (T, error)) error {
	result, err := read(cmd.Context(), key)

	if hasError(err) {
		return err
	}

	write(cmd, result)
	return nil
}
