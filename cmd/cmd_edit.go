package cmd

import (
	"fmt"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/code"

	"github.com/spf13/cobra"
)

// saveAndReport reconciles the session; a save with no changes says so
func saveAndReport(cmd *cobra.Command, s *service.Session) error {
	changed, err := s.Save(cmd.Context())
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing changed")
	}
	return nil
}

func newActionCmd(action domain.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <id|name>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				if _, err := s.AdvanceID(b.ID, action); err != nil {
					return err
				}
				if err := saveAndReport(cmd, s); err != nil {
					return err
				}
				return writeRecord(cmd.OutOrStdout(), b)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(
		newActionCmd(domain.ActionFertilize, "Record a fertilization today and schedule the next one"),
		newActionCmd(domain.ActionPrune, "Record a pruning today"),
		newActionCmd(domain.ActionRepot, "Record a repot today"),
		newActionCmd(domain.ActionWire, "Record a wiring today"),
	)

	setCmd := &cobra.Command{
		Use:   "set <id|name> <field> <dd.mm.yyyy>",
		Short: "Set one maintenance date by hand",
		Long: `Set one maintenance date by hand.

field is one of next_fertilize, last_pruning, last_repot, last_wiring
(or fertilize, pruning, repot, wiring). The date may be "Not Yet" to clear it.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, rawField, raw := refArg(args[:len(args)-2]), args[len(args)-2], args[len(args)-1]
			// "Not Yet" 作为两个参数传入
			if rawField == "Not" && raw == "Yet" && len(args) >= 4 {
				ref, rawField, raw = refArg(args[:len(args)-3]), args[len(args)-3], "Not Yet"
			}
			field, ok := domain.ParseField(rawField)
			if !ok {
				return code.ErrorInvalidField.WithDetails(rawField)
			}
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(ref)
				if err != nil {
					return err
				}
				if err := s.Set(b.ID, field, raw); err != nil {
					return err
				}
				if err := saveAndReport(cmd, s); err != nil {
					return err
				}
				return writeRecord(cmd.OutOrStdout(), b)
			})
		},
	}
	rootCmd.AddCommand(setCmd)

	var name, purchased string
	addCmd := &cobra.Command{
		Use:   "add --name <name> --purchased <dd.mm.yyyy>",
		Short: "Add a newly bought tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Create(cmd.Context(), name, purchased)
				if err != nil {
					return err
				}
				return writeRecord(cmd.OutOrStdout(), b)
			})
		},
	}
	addCmd.Flags().StringVarP(&name, "name", "n", "", "tree name")
	addCmd.Flags().StringVarP(&purchased, "purchased", "p", "", "purchase date, dd.mm.yyyy")
	rootCmd.AddCommand(addCmd)

	deleteCmd := &cobra.Command{
		Use:     "delete <id|name>",
		Aliases: []string{"rm"},
		Short:   "Delete a tree, its whole history and its notes",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				if err := s.Delete(cmd.Context(), b.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d %s\n", b.ID, b.Name)
				return nil
			})
		},
	}
	rootCmd.AddCommand(deleteCmd)

	var historyFormat string
	historyCmd := &cobra.Command{
		Use:   "history <id|name> [-o table|json]",
		Short: "Show every stored version of a tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(historyFormat); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				versions, err := s.History(cmd.Context(), b.ID)
				if err != nil {
					return err
				}
				return writeHistory(cmd.OutOrStdout(), versions, historyFormat)
			})
		},
	}
	historyCmd.Flags().StringVarP(&historyFormat, "output", "o", formatTable, "output format: table or json")
	rootCmd.AddCommand(historyCmd)
}
