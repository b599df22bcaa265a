// Package storefrontclient assembles the storefront session, cart, and
// checkout services over a single shared backend gateway and token store.
package storefrontclient

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/thedeposit/storefront-client/internal/core/ports"
	"github.com/thedeposit/storefront-client/internal/core/service"
	"github.com/thedeposit/storefront-client/internal/infrastructure/config"
	"github.com/thedeposit/storefront-client/internal/infrastructure/rest"
	"github.com/thedeposit/storefront-client/internal/infrastructure/storage"
	"github.com/thedeposit/storefront-client/pkg/logger"
)

// App bundles the three stateful services. All of them share one gateway
// and one token store, so a login performed through Session is visible to
// Cart and Checkout immediately.
type App struct {
	Session  ports.SessionService
	Cart     ports.CartService
	Checkout ports.CheckoutService
}

// New builds an App from environment configuration. Shared-terminal
// deployments set TERMINAL_ID to keep the session token in Redis; every
// other deployment gets a per-user token file.
func New() *App {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tokens := tokenStore(cfg)
	gateway := rest.NewClient(cfg.APIBaseURL, cfg.APITimeout, tokens, log)

	session := service.NewSessionService(gateway, tokens, log)
	cart := service.NewCartService(gateway, session, log)
	checkout := service.NewCheckoutService(gateway, cart, log)

	return &App{Session: session, Cart: cart, Checkout: checkout}
}

func tokenStore(cfg *config.Config) ports.TokenStore {
	if cfg.Redis.TerminalID != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		return storage.NewRedisTokenStore(client, cfg.Redis.TerminalID)
	}
	return storage.NewFileTokenStore(cfg.TokenFile)
}
