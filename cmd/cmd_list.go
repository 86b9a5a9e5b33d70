package cmd

import (
	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/service"

	"github.com/spf13/cobra"
)

func init() {
	var format string

	listCmd := &cobra.Command{
		Use:     "list [-o table|json]",
		Aliases: []string{"ls"},
		Short:   "List the current state of every tree",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				return writeRecords(cmd.OutOrStdout(), s.WorkingSet().Records(), format)
			})
		},
	}
	listCmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table or json")
	rootCmd.AddCommand(listCmd)

	var dueFormat string
	dueCmd := &cobra.Command{
		Use:   "due [-o table|json]",
		Short: "List the trees whose fertilization date has been reached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(dueFormat); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				return writeRecords(cmd.OutOrStdout(), s.Due(), dueFormat)
			})
		},
	}
	dueCmd.Flags().StringVarP(&dueFormat, "output", "o", formatTable, "output format: table or json")
	rootCmd.AddCommand(dueCmd)
}
