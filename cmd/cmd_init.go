package cmd

import (
	"fmt"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/service"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"upgrade"},
	Short:   "Create the ledger and apply pending migrations",
	Long: `Create the ledger and apply pending migrations.

A fresh ledger is seeded with the initial collection; a database written by the
previous application is imported. It is safe to run this command multiple times -
already applied migrations will be skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ledger ready at %s: %d trees\n", a.Config().Database.Path, s.WorkingSet().Len())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
