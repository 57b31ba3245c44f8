package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luiz-simples/keyop.git/internal/app"
	"github.com/luiz-simples/keyop.git/internal/server"
)

var (
	// ServeCmd runs the in-memory store emulator until interrupted.
	ServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Starts the in-memory store emulator on --address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.BindPFlags(cmd.Flags()); hasError(err) {
				return err
			}

			config, err := app.LoadConfig()

			if hasError(err) {
				return err
			}

			emulator, err := server.New(server.Config{
				Address:  config.Address,
				Password: config.Password,
				Scripts:  config.Scripts(),
			})

			if hasError(err) {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, emulator)
		},
	}
)

// serve blocks until the emulator fails or ctx is done.
func serve(ctx context.Context, emulator *server.Server) error {
	failed := make(chan error, 1)

	go func() {
		failed <- emulator.ListenAndServe()
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	log.Info("store emulator stopping")

	if err := emulator.Close(); hasError(err) {
		return err
	}

	return <-failed
}
