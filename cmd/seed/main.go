package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-storefront/config"
	"github.com/oksasatya/go-storefront/internal/application"
	pginfra "github.com/oksasatya/go-storefront/internal/infrastructure/postgres"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// seed creates the default roles and accounts. Safe to run repeatedly.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pool.Close()

	identity := application.NewIdentityService(
		pginfra.NewUserRepository(pool),
		pginfra.NewRoleRepository(pool),
		nil, // no sessions are issued while seeding
		nil,
		logger,
	)
	if err := identity.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	logger.Info("default roles and accounts ensured")
	return nil
}
