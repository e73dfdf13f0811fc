package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lbarrett/tempo/internal/api"
	"github.com/lbarrett/tempo/internal/httpserver"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the timeline frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Addr
			}

			mux := http.NewServeMux()
			api.NewHandler(app.Timer, app.Entries, app.Tasks, app.Loc).RegisterRoutes(mux)

			srv := httpserver.New(
				httpserver.DefaultConfig(addr),
				api.WithRequestLogging(app.Logger, mux),
			)

			errs := make(chan error, 1)
			go func() {
				errs <- srv.ListenAndServe()
			}()
			app.Logger.Info("server_listening", "addr", addr)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errs:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-stop:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to TEMPO_ADDR)")

	return cmd
}
