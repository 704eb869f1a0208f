package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/voidhawk/rconpanel/internal/config"
	"github.com/voidhawk/rconpanel/internal/factory"
	"github.com/voidhawk/rconpanel/internal/web"
	"github.com/voidhawk/rconpanel/internal/web/handler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin panel server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			slog.SetDefault(logger)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			app, err := factory.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Error("failed to close storage", slog.Any("error", err))
				}
			}()

			router := web.NewRouter(web.RouterConfig{
				Logger:      logger,
				BansService: app.BansService,
				AuthService: app.AuthService,
				Panel: handler.PanelInfo{
					TabTitle:   cfg.Panel.TabTitle,
					GameName:   cfg.Panel.GameName,
					ServerName: cfg.Panel.ServerName,
				},
				LoginRateLimit: rate.Limit(cfg.Admin.LoginRatePerSecond),
				LoginBurst:     cfg.Admin.LoginBurst,
			})

			serverConfig := web.DefaultServerConfig()
			serverConfig.Addr = cfg.Server.Addr()
			serverConfig.ReadTimeout = cfg.Server.ReadTimeout()
			serverConfig.WriteTimeout = cfg.Server.WriteTimeout()
			serverConfig.IdleTimeout = cfg.Server.IdleTimeout()
			server := web.NewServer(router, serverConfig, logger)

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

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			logger.Info("panel started",
				slog.String("addr", server.Addr()),
				slog.String("storage", cfg.Storage.Type),
				slog.Bool("auth", app.AuthService.Enabled()),
			)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return server.Shutdown(context.Background())
			}
		},
	}
}
