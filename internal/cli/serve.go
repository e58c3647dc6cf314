package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyflow/internal/api"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := openDeps(ctx, opts)
			if err != nil {
				return err
			}
			defer d.Close()
			if addr != "" {
				d.cfg.APIAddr = addr
			}

			srv := &http.Server{
				Addr:              d.cfg.APIAddr,
				Handler:           api.NewServer(d.cfg, d.service, d.recorder, d.log).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				d.log.Info("studyflow api listening", "addr", d.cfg.APIAddr, "allowed_origin", d.cfg.AllowedOrigin, "llm_providers", d.cfg.LLMProviders)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			d.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $STUDYFLOW_API_ADDR or :8000)")
	return cmd
}
