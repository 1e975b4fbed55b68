package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/backoffice-erp/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/backoffice-erp/identity-api/internal/infrastructure/db/redis"
	"github.com/backoffice-erp/identity-api/internal/infrastructure/security"
)

// store bundles the credential store connection and its repository.
type store struct {
	client *mongodriver.Client
	db     *mongodriver.Database
	users  *mongo.UserRepository
}

func openStore(ctx context.Context) (*store, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	return &store{client: client, db: db, users: mongo.NewUserRepository(db)}, nil
}

func (s *store) close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongodb disconnect")
	}
}

// openRedis returns nil when Redis is not configured.
func openRedis(ctx context.Context) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		log.Info().Msg("redis not configured, login rate limiting disabled")
		return nil, nil
	}
	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return client, nil
}

func newHasher() (*security.BcryptHasher, *security.Pool) {
	pool := security.NewPool(cfg.Auth.HashWorkers, log)
	return security.NewBcryptHasher(cfg.Auth.BcryptCost, pool), pool
}
