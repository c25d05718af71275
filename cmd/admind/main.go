package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"unibite/config"
	"unibite/internal/delivery"
	"unibite/internal/delivery/http"
	"unibite/internal/delivery/http/middleware"
	"unibite/internal/delivery/http/router/handler"
	"unibite/internal/infra/auth"
	"unibite/internal/infra/feed"
	"unibite/internal/infra/localstore"
	logs "unibite/internal/infra/log"
	"unibite/internal/infra/postgres"
	"unibite/internal/infra/qrcode"
	"unibite/internal/usecase"
	"unibite/internal/usecase/impl"
)

const postgresProfile = "postgres"

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// The gateway profile decides which providers enter the graph, so the
	// configuration is loaded before fx assembles it.
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		injectInfra(),
		injectGateway(cfg),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			rehydrateSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		logs.New,
		context.Background,
		feed.New,
	)
}

// injectGateway selects the deployment profile. The local snapshot is always
// in the graph: the postgres profile still persists sessions and the audit
// log through it.
func injectGateway(cfg *config.Config) fx.Option {
	options := []fx.Option{
		fx.Provide(
			newSnapshot,
			localstore.NewSessionStore,
		),
	}

	if cfg.Gateway.Profile == postgresProfile {
		options = append(options, fx.Provide(
			postgres.New,
			postgres.NewGateway,
		))
	} else {
		options = append(options, fx.Provide(localstore.NewGateway))
	}

	return fx.Options(options...)
}

func newSnapshot(cfg *config.Config) (*localstore.Snapshot, error) {
	path := "unibite-state.json"
	if cfg.Gateway.Local != nil && cfg.Gateway.Local.Path != "" {
		path = cfg.Gateway.Local.Path
	}

	return localstore.NewSnapshot(path)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewCredentialVault,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuditLog,
			impl.NewAdminStore,
			impl.NewAuthService,
			// The auth machine only drives activation; narrow the store to
			// that slice.
			func(store usecase.StoreUsecase) usecase.StoreLifecycle { return store },
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewDashboardHandler,
			handler.NewUserHandler,
			handler.NewShopHandler,
			handler.NewOrderHandler,
			handler.NewPartnerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// rehydrateSession restores a persisted authenticated session before the
// server starts accepting requests.
func rehydrateSession(ctx context.Context, authUC usecase.AuthUsecase, logger *slog.Logger) {
	if err := authUC.Rehydrate(ctx); err != nil {
		logger.Warn("Session rehydration failed", slog.Any("error", err))
	}
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
