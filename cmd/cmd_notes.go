package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/code"

	"github.com/spf13/cobra"
)

func init() {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Read and edit the notes kept for each tree",
	}

	notesCmd.AddCommand(&cobra.Command{
		Use:   "show <id|name>",
		Short: "Print the notes of a tree, or the empty template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				text, err := s.Notes().Text(cmd.Context(), b)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			})
		},
	})

	notesCmd.AddCommand(&cobra.Command{
		Use:   "template",
		Short: "Print the empty notes template",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), service.NoteTemplate())
		},
	})

	var file string
	editCmd := &cobra.Command{
		Use:   "edit <id|name> [--file notes.txt]",
		Short: "Replace the notes of a tree with edited text read from a file or stdin",
		Long: `Replace the notes of a tree with edited text.

The text uses the same layout "notes show" prints: a line ending in ':' opens a
category, each bulleted line below it is one note. The changed lines are printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file != "" && file != "-" {
				data, err = os.ReadFile(file)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return code.ErrorNoteRead.WithCause(err)
			}

			return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
				b, err := s.Resolve(refArg(args))
				if err != nil {
					return err
				}
				diff, err := s.Notes().SaveText(cmd.Context(), b, string(data))
				if err != nil {
					return err
				}
				if diff == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "notes unchanged")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), diff)
				return nil
			})
		},
	}
	editCmd.Flags().StringVarP(&file, "file", "f", "", "read the edited notes from this file instead of stdin")
	notesCmd.AddCommand(editCmd)

	rootCmd.AddCommand(notesCmd)
}
