// Command identity-api serves registration, login and admin user management
// for the back-office ERP.
//
// @title                       Back-office Identity API
// @version                     1.0
// @description                 Registration, login and admin user management for the back-office ERP.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/backoffice-erp/identity-api/internal/pkg/config"
	"github.com/backoffice-erp/identity-api/pkg/logger"
)

const serviceName = "identity-api"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Back-office identity service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return err
		}
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.IsDevelopment(),
			Service: serviceName,
		})
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		stop()
		os.Exit(1)
	}
}
