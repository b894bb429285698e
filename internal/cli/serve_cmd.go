package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"timetracker/internal/api"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local database over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Remote() {
				return errors.New("serve needs a local database; unset --backend")
			}
			store, ok := app.Backend.(api.Store)
			if !ok {
				return errors.New("configured backend cannot be served")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(store, app.Config.Addr, app.Logger).Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	return cmd
}
