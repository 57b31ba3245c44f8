package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luiz-simples/keyop.git/internal/app"
	"github.com/luiz-simples/keyop.git/internal/storage"
)

var (
	// RootCmd is the keyop binary; it runs nothing by itself.
	RootCmd = &cobra.Command{
		Use:          "keyop",
		Short:        "typed operators over a Redis-compatible store",
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(app.InitConfig)

	flags := RootCmd.PersistentFlags()
	flags.String(app.KeyAddress, storage.DefaultAddress, "store address (host:port)")
	flags.String(app.KeyPassword, "", "password sent with AUTH")
	flags.Int(app.KeyDatabase, 0, "logical database index (0-15)")
	flags.Int(app.KeyPoolSize, storage.DefaultPoolSize, "maximum open connections")
	flags.Duration(app.KeyDialTimeout, storage.DefaultDialTimeout, "timeout for opening a connection")
	flags.String(app.KeyScriptsDir, "", "directory holding lua/<category>/<name>.lua, replaces the embedded scripts")

	RootCmd.AddCommand(KeyCommands)
	RootCmd.AddCommand(StringCommands)
	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(BenchCmd)
}

// Execute runs RootCmd and exits with status 1 on error.
func Execute() {
	if err := RootCmd.Execute(); hasError(err) {
		os.Exit(1)
	}
}
