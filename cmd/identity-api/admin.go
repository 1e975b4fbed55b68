package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
	"github.com/backoffice-erp/identity-api/internal/core/service"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminInput ports.RegisterInput

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator account",
	Long: `Creates a user with the admin role. Self-registration only ever creates
customers, so this is how the first administrator is provisioned.

The password may be given with --password or the ADMIN_PASSWORD variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminInput.Password == "" {
			adminInput.Password = os.Getenv("ADMIN_PASSWORD")
		}
		if adminInput.Password == "" {
			return errors.New("a password is required (--password or ADMIN_PASSWORD)")
		}

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.close(ctx)

		if err := st.users.EnsureIndexes(ctx); err != nil {
			return err
		}

		hasher, pool := newHasher()
		defer pool.Close()

		users := service.NewUserService(st.users, hasher, log)
		user, err := users.Create(ctx, ports.CreateUserInput{RegisterInput: adminInput, Role: domain.RoleAdmin})
		if err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				return fmt.Errorf("an account with email %s already exists", adminInput.Email)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminInput.Name, "name", "", "full name")
	f.StringVar(&adminInput.Email, "email", "", "login email")
	f.StringVar(&adminInput.Password, "password", "", "login password")
	f.StringVar(&adminInput.Gender, "gender", "unspecified", "gender")
	f.StringVar(&adminInput.DateOfBirth, "date-of-birth", "unspecified", "date of birth")
	f.StringVar(&adminInput.MobileNumber, "mobile", "unspecified", "mobile number")
	f.StringVar(&adminInput.Address, "address", "unspecified", "address")
	_ = adminCreateCmd.MarkFlagRequired("name")
	_ = adminCreateCmd.MarkFlagRequired("email")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
