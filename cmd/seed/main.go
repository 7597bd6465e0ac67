// Command seed provisions the initial admin user. It goes through the same
// repository the service uses and is a no-op when the account already exists.
package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/backendgym/admin-auth-api/internal/core/service"
	"github.com/backendgym/admin-auth-api/internal/infrastructure/config"
	mongodb "github.com/backendgym/admin-auth-api/internal/infrastructure/db/mongo"
	"github.com/backendgym/admin-auth-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	err = service.SeedAdmin(ctx, repo, service.SeedAdminInput{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().Msg("seeding completed")
}
