package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/backoffice-erp/identity-api/internal/api"
	"github.com/backoffice-erp/identity-api/internal/core/service"
	redisdb "github.com/backoffice-erp/identity-api/internal/infrastructure/db/redis"
	"github.com/backoffice-erp/identity-api/internal/pkg/token"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	if err := st.users.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := openRedis(ctx)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	tokens, err := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, token.WithIssuer(cfg.Auth.TokenIssuer))
	if err != nil {
		return err
	}
	hasher, pool := newHasher()
	defer pool.Close()

	deps := api.Deps{
		AuthService:    service.NewAuthService(st.users, hasher, tokens, log),
		UserService:    service.NewUserService(st.users, hasher, log),
		Tokens:         tokens,
		Mongo:          st.db,
		Redis:          rdb,
		CORSOrigins:    cfg.CORS.AllowOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Log:            log,
	}
	if rdb != nil && cfg.RateLimit.LoginPerMinute > 0 {
		deps.LoginLimiter = redisdb.NewRateLimiter(rdb, "login", cfg.RateLimit.LoginPerMinute, time.Minute)
	}

	e, err := api.NewRouter(deps)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
