package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xl-idp/unzipping/internal/api"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the inbox and process workbooks as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}
		defer svc.close()

		watcher, err := buildWatcher(svc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if svc.cfg.API.Enabled {
			srv := &http.Server{
				Addr:    svc.cfg.API.Listen,
				Handler: api.NewRouter(svc.pipeline.Stats(), svc.log),
			}
			go func() {
				svc.log.Info().Str("listen", srv.Addr).Msg("api listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					svc.log.Error().Err(err).Msg("api server stopped")
				}
			}()
			go func() {
				<-ctx.Done()
				srv.Shutdown(context.Background())
			}()
		}

		svc.log.Info().
			Str("inbox", svc.cfg.InputDir).
			Str("root", svc.cfg.Root).
			Msg("watching inbox")
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		svc.log.Info().Msg("shutting down")
		return nil
	},
}
