package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/application"
	"github.com/oksasatya/go-storefront/internal/container"
	pginfra "github.com/oksasatya/go-storefront/internal/infrastructure/postgres"
	"github.com/oksasatya/go-storefront/internal/infrastructure/payment"
	"github.com/oksasatya/go-storefront/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-storefront/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-storefront/internal/interface/http"
	"github.com/oksasatya/go-storefront/internal/interface/middleware"
	"github.com/oksasatya/go-storefront/internal/router/modules"
)

// Deps is everything the route modules need.
type Deps struct {
	Redis    *redis.Client // nil disables rate limiting
	Sessions middleware.SessionResolver
	Auth     *handlers.AuthHandler
	Profile  *handlers.ProfileHandler
	Catalog  *handlers.CatalogHandler
	Admin    *handlers.AdminHandler
	Metrics  bool
}

// Services groups the application services built from the container.
type Services struct {
	Identity *application.IdentityService
	Accounts *application.AccountService
	Catalog  *application.CatalogService
	Checkout *application.CheckoutService
}

// BuildServices wires repositories and external clients from the container.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	roles := pginfra.NewRoleRepository(pool)
	items := pginfra.NewItemRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	sessions := redisstore.NewSessionRepository(container.GetRedis())

	var index application.ItemIndex
	if es := container.GetES(); es != nil {
		index = search.NewItemIndex(es, cfg.ESItemsIndex)
	}
	var events application.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = pub
	}
	gateway := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentMerchantID, cfg.PaymentSecretKey, cfg.PaymentTimeout)

	return Services{
		Identity: application.NewIdentityService(users, roles, sessions, container.GetJWT(), logger),
		Accounts: application.NewAccountService(users, logger),
		Catalog:  application.NewCatalogService(items, orders, index, logger),
		Checkout: application.NewCheckoutService(items, orders, gateway, events, cfg.PaymentCurrency, logger),
	}
}

// NewDeps builds the HTTP handlers on top of svc.
func NewDeps(svc Services, logger *logrus.Logger, appName, cookieDomain string, cookieSecure bool, rdb *redis.Client, metrics bool) Deps {
	return Deps{
		Redis:    rdb,
		Sessions: svc.Identity,
		Auth:     handlers.NewAuthHandler(svc.Identity, logger, cookieDomain, cookieSecure),
		Profile:  handlers.NewProfileHandler(svc.Accounts, svc.Catalog, svc.Identity, logger, cookieDomain, cookieSecure),
		Catalog:  handlers.NewCatalogHandler(svc.Catalog, svc.Checkout, appName, logger),
		Admin:    handlers.NewAdminHandler(svc.Accounts, svc.Catalog, logger),
		Metrics:  metrics,
	}
}

// Mount registers the session loader and every module on r.
func Mount(r *Registry, d Deps) {
	r.Use(middleware.Auth(d.Sessions))
	r.Add(modules.NewDebugModule(d.Metrics))
	r.Add(modules.NewAuthModule(d.Auth, d.Redis))
	r.Add(modules.NewStorefrontModule(d.Catalog, d.Redis))
	r.Add(modules.NewProfileModule(d.Profile))
	r.Add(modules.NewAdminModule(d.Admin))
}

// InitModules initializes all application modules from the container and adds them to the registry.
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, svc Services) {
	cfg := container.GetConfig()
	Mount(r, NewDeps(svc, container.GetLogger(), cfg.AppName, cfg.CookieDomain, cfg.CookieSecure, container.GetRedis(), cfg.MetricsEnabled))
}
