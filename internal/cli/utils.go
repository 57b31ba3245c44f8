package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luiz-simples/keyop.git/internal/app"
	"github.com/luiz-simples/keyop.git/internal/domain"
	"github.com/luiz-simples/keyop.git/internal/logger"
	"github.com/luiz-simples/keyop.git/internal/storage"
)

var log = logger.Component("cli")

const (
	flagBehavior = "behavior"
	flagExpiry   = "ex"
	flagKeepTTL  = "keepttl"
	flagGet      = "get"

	nilOutput = "(nil)"
)

var (
	client   *storage.Client
	operator *app.BasicOperator
)

// connect binds the flags of the running command and opens the operator
// every subcommand of a group works through.
func connect(cmd *cobra.Command, args []string) error {
	if err := disconnect(cmd, args); hasError(err) {
		return err
	}

	if err := viper.BindPFlags(cmd.Flags()); hasError(err) {
		return err
	}

	config, err := app.LoadConfig()

	if hasError(err) {
		return err
	}

	client = storage.NewClient(config.Options())
	operator = app.NewBasicOperator(client, config)

	log.Debug("cli connected", "address", config.Address, "database", config.Database)
	return nil
}

func disconnect(_ *cobra.Command, _ []string) error {
	if client == nil {
		return nil
	}

	err := client.Close()
	client, operator = nil, nil

	return err
}

func expireBehavior(cmd *cobra.Command) (domain.ExpireBehavior, error) {
	token, _ := cmd.Flags().GetString(flagBehavior)
	return domain.ParseExpireBehavior(strings.ToUpper(token))
}

func writeBehavior(cmd *cobra.Command) (domain.WriteBehavior, error) {
	token, _ := cmd.Flags().GetString(flagBehavior)
	return domain.ParseWriteBehavior(strings.ToUpper(token))
}

func parseInt(name, value string) (int64, error) {
	number, err := strconv.ParseInt(value, 10, 64)

	if hasError(err) {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}

	return number, nil
}

func write(cmd *cobra.Command, value any) {
	fmt.Fprintln(cmd.OutOrStdout(), value)
}

func printOptional(cmd *cobra.Command, result domain.OperationResult[string]) {
	if !result.Succeeded {
		write(cmd, nilOutput)
		return
	}

	write(cmd, result.Data)
}

// pairsOf reads "key value key value ..." arguments.
func pairsOf(args []string) (map[string]string, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: expected key value pairs, got %d arguments", domain.ErrSyntax, len(args))
	}

	values := make(map[string]string, len(args)/2)

	for index := 0; index < len(args); index += 2 {
		values[args[index]] = args[index+1]
	}

	return values, nil
}

func hasError(err error) bool {
	return err != nil
}
