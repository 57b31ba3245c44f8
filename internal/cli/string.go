package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

var (
	// StringCommands groups the string value operations.
	StringCommands = &cobra.Command{
		Use:                "string",
		Short:              "String value operations",
		PersistentPreRunE:  connect,
		PersistentPostRunE: disconnect,
	}

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			behavior, err := writeBehavior(cmd)

			if hasError(err) {
				return err
			}

			expiry, _ := cmd.Flags().GetDuration(flagExpiry)
			keepTTL, _ := cmd.Flags().GetBool(flagKeepTTL)
			returnOld, _ := cmd.Flags().GetBool(flagGet)

			result, err := operator.String().Set(cmd.Context(), args[0], args[1], domain.SetOptions{
				Expiry:    expiry,
				KeepTTL:   keepTTL,
				Behavior:  behavior,
				ReturnOld: returnOld,
			})

			if hasError(err) {
				return err
			}

			if result.Succeeded && !returnOld {
				write(cmd, "OK")
				return nil
			}

			printOptional(cmd, result)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := operator.String().Get(cmd.Context(), args[0])

			if hasError(err) {
				return err
			}

			printOptional(cmd, result)
			return nil
		},
	}
	getDelCmd = &cobra.Command{
		Use:   "getdel [key]",
		Short: "Reads the value of a key and deletes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := operator.String().GetDel(cmd.Context(), args[0])

			if hasError(err) {
				return err
			}

			printOptional(cmd, result)
			return nil
		},
	}
	getExCmd = &cobra.Command{
		Use:   "getex [key]",
		Short: "Reads the value of a key and resets its expiry (removed without --ex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expiry, _ := cmd.Flags().GetDuration(flagExpiry)

			value, err := operator.String().GetEx(cmd.Context(), args[0], expiry)

			if hasError(err) {
				return err
			}

			write(cmd, value)
			return nil
		},
	}
	getRangeCmd = &cobra.Command{
		Use:   "getrange [key] [start] [end]",
		Short: "Reads a substring of the value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseInt("start", args[1])

			if hasError(err) {
				return err
			}

			end, err := parseInt("end", args[2])

			if hasError(err) {
				return err
			}

			value, err := operator.String().GetRange(cmd.Context(), args[0], start, end)

			if hasError(err) {
				return err
			}

			write(cmd, value)
			return nil
		},
	}
	setRangeCmd = &cobra.Command{
		Use:   "setrange [key] [offset] [value]",
		Short: "Overwrites part of the value starting at offset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.ParseUint(args[1], 10, 32)

			if hasError(err) {
				return fmt.Errorf("offset must be a non-negative integer: %w", err)
			}

			length, err := operator.String().SetRange(cmd.Context(), args[0], uint32(offset), args[2])

			if hasError(err) {
				return err
			}

			write(cmd, length)
			return nil
		},
	}
	mgetCmd = &cobra.Command{
		Use:   "mget [key...]",
		Short: "Reads several keys, one key=value line each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := operator.String().MGet(cmd.Context(), args...)

			if hasError(err) {
				return err
			}

			for _, key := range slices.Sorted(maps.Keys(result.Data)) {
				write(cmd, key+"="+result.Data[key])
			}

			return nil
		},
	}
	msetCmd = &cobra.Command{
		Use:   "mset [key value...]",
		Short: "Sets several keys at once",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := pairsOf(args)

			if hasError(err) {
				return err
			}

			if err = operator.String().MSet(cmd.Context(), values); hasError(err) {
				return err
			}

			write(cmd, "OK")
			return nil
		},
	}
	msetNXCmd = &cobra.Command{
		Use:   "msetnx [key value...]",
		Short: "Sets several keys only if none of them exist",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := pairsOf(args)

			if hasError(err) {
				return err
			}

			written, err := operator.String().MSetNX(cmd.Context(), values)

			if hasError(err) {
				return err
			}

			write(cmd, written)
			return nil
		},
	}
	strLenCmd = &cobra.Command{
		Use:   "strlen [key]",
		Short: "Prints the length of the value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := operator.String().StrLen(cmd.Context(), args[0])

			if hasError(err) {
				return err
			}

			write(cmd, length)
			return nil
		},
	}
	appendCmd = &cobra.Command{
		Use:   "append [key] [value]",
		Short: "Appends to the value and prints the new length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := operator.String().Append(cmd.Context(), args[0], args[1])

			if hasError(err) {
				return err
			}

			write(cmd, length)
			return nil
		},
	}
	incrByCmd = &cobra.Command{
		Use:   "incrby [key] [increment]",
		Short: "Increments the integer value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			increment, err := parseInt("increment", args[1])

			if hasError(err) {
				return err
			}

			value, err := operator.String().IncrBy(cmd.Context(), args[0], increment)

			if hasError(err) {
				return err
			}

			write(cmd, value)
			return nil
		},
	}
	decrByCmd = &cobra.Command{
		Use:   "decrby [key] [decrement]",
		Short: "Decrements the integer value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			decrement, err := parseInt("decrement", args[1])

			if hasError(err) {
				return err
			}

			value, err := operator.String().DecrBy(cmd.Context(), args[0], decrement)

			if hasError(err) {
				return err
			}

			write(cmd, value)
			return nil
		},
	}
	incrByFloatCmd = &cobra.Command{
		Use:   "incrbyfloat [key] [increment]",
		Short: "Increments the value as a float",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			increment, err := strconv.ParseFloat(args[1], 64)

			if hasError(err) {
				return fmt.Errorf("increment must be a number: %w", err)
			}

			value, err := operator.String().IncrByFloat(cmd.Context(), args[0], increment)

			if hasError(err) {
				return err
			}

			write(cmd, strconv.FormatFloat(value, 'f', -1, 64))
			return nil
		},
	}
)

func init() {
	StringCommands.AddCommand(setCmd)
	StringCommands.AddCommand(getCmd)
	StringCommands.AddCommand(getDelCmd)
	StringCommands.AddCommand(getExCmd)
	StringCommands.AddCommand(getRangeCmd)
	StringCommands.AddCommand(setRangeCmd)
	StringCommands.AddCommand(mgetCmd)
	StringCommands.AddCommand(msetCmd)
	StringCommands.AddCommand(msetNXCmd)
	StringCommands.AddCommand(strLenCmd)
	StringCommands.AddCommand(appendCmd)
	StringCommands.AddCommand(incrByCmd)
	StringCommands.AddCommand(decrByCmd)
	StringCommands.AddCommand(incrByFloatCmd)

	setCmd.Flags().String(flagBehavior, "", "condition: NX or XX")
	setCmd.Flags().Duration(flagExpiry, 0, "expiry such as 1500ms or 10s")
	setCmd.Flags().Bool(flagKeepTTL, false, "keep the current expiry")
	setCmd.Flags().Bool(flagGet, false, "print the previous value")

	getExCmd.Flags().Duration(flagExpiry, 0, "new expiry; the expiry is removed when omitted")
}
