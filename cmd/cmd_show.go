package cmd

import (
	"fmt"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/dto"
	"github.com/haierkeys/bonsai-keeper/internal/service"

	"github.com/spf13/cobra"
)

func init() {
	var format string

	showCmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one tree and its notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()

				if format == formatJSON {
					doc, found, err := s.Notes().Load(cmd.Context(), b)
					if err != nil {
						return err
					}
					if !found {
						doc = service.ParseNotes(service.NoteTemplate())
					}
					return writeJSON(w, dto.NewBonsaiDetailDTO(b, doc))
				}

				if err := writeRecord(w, b); err != nil {
					return err
				}
				text, err := s.Notes().Text(cmd.Context(), b)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "\n%s", text)
				return nil
			})
		},
	}
	showCmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table or json")
	rootCmd.AddCommand(showCmd)
}
