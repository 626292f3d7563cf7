package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cmerin0/PlayersSimpleApp/internal/api"
	"github.com/cmerin0/PlayersSimpleApp/internal/config"
	"github.com/cmerin0/PlayersSimpleApp/internal/factory"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up logging with JSON output
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))
			slog.SetDefault(logger)

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			app, err := factory.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer app.Storage.Close()
			defer app.Cache.Close()

			router := api.NewRouter(api.RouterConfig{
				Logger:        logger,
				AuthService:   app.AuthService,
				TeamService:   app.TeamService,
				PlayerService: app.PlayerService,
				TokenConfig:   app.TokenConfig,
			})

			serverConfig := api.DefaultServerConfig()
			serverConfig.Host = cfg.Host
			serverConfig.Port = cfg.Port
			server := api.NewServer(router, serverConfig, logger)

			// Handle graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				logger.Info("shutdown signal received")
				cancel()
			}()

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			logger.Info("server started", slog.String("addr", server.Addr()))

			// Wait for shutdown or error
			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				if err := server.Shutdown(context.Background()); err != nil {
					return err
				}
			}

			logger.Info("server stopped")
			return nil
		},
	}
}
