package main

import (
	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the credential store indexes",
	Long: `Creates the unique index on users.email and the createdAt listing index.
Safe to run repeatedly; serve also runs it on startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.close(ctx)

		if err := st.users.EnsureIndexes(ctx); err != nil {
			return err
		}
		log.Info().Msg("indexes ensured")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
