package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/haierkeys/bonsai-keeper/internal/app"
	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/service"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	apperrors "github.com/haierkeys/bonsai-keeper/pkg/errors"

	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  list                      all trees
  show [id|name]            current tree (or the named one) with its notes
  next | prev               move to the next or previous tree
  goto <id|name>            jump to a tree
  fertilize | prune | repot | wire
                            record the action today on the current tree
  set <field> <dd.mm.yyyy>  edit a date of the current tree
  add <dd.mm.yyyy> <name>   add a tree bought on that date
  delete                    delete the current tree
  due                       trees to fertilize now
  save                      write changes to the ledger
  quit                      leave (refused while changes are unsaved, quit! forces)
`

// shell 交互式会话，所有命令共享同一个工作集
type shell struct {
	ctx  context.Context
	sess *service.Session
	out  io.Writer
}

// exec runs one input line; quit is true when the loop should end
func (sh *shell) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	verb, rest := strings.ToLower(fields[0]), fields[1:]
	s := sh.sess

	switch verb {
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "list", "ls":
		return false, writeRecords(sh.out, s.WorkingSet().Records(), formatTable)
	case "due":
		return false, writeRecords(sh.out, s.Due(), formatTable)
	case "show":
		b, err := sh.target(rest)
		if err != nil {
			return false, err
		}
		if err := writeRecord(sh.out, b); err != nil {
			return false, err
		}
		text, err := s.Notes().Text(sh.ctx, b)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "\n%s", text)
	case "next", "n":
		return false, sh.print(s.Next())
	case "prev", "p":
		return false, sh.print(s.Prev())
	case "goto", "g":
		return false, sh.print(s.Seek(strings.Join(rest, " ")))
	case string(domain.ActionFertilize), string(domain.ActionPrune), string(domain.ActionRepot), string(domain.ActionWire):
		return false, sh.print(s.Advance(domain.Action(verb)))
	case "set":
		if len(rest) < 2 {
			return false, code.ErrorInvalidParams.WithDetails("usage: set <field> <dd.mm.yyyy>")
		}
		f, ok := domain.ParseField(rest[0])
		if !ok {
			return false, code.ErrorInvalidField.WithDetails(rest[0])
		}
		b, err := s.Current()
		if err != nil {
			return false, err
		}
		if err := s.Set(b.ID, f, strings.Join(rest[1:], " ")); err != nil {
			return false, err
		}
		return false, writeRecord(sh.out, b)
	case "add":
		if len(rest) < 2 {
			return false, code.ErrorInvalidParams.WithDetails("usage: add <dd.mm.yyyy> <name>")
		}
		return false, sh.print(s.Create(sh.ctx, strings.Join(rest[1:], " "), rest[0]))
	case "delete", "rm":
		b, err := s.Current()
		if err != nil {
			return false, err
		}
		if err := s.Delete(sh.ctx, b.ID); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "deleted %d %s\n", b.ID, b.Name)
	case "save", "w":
		changed, err := s.Save(sh.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "saved %d trees\n", len(changed))
	case "quit", "exit", "q":
		if s.Dirty() {
			fmt.Fprintln(sh.out, "unsaved changes: save first or use quit!")
			return false, nil
		}
		return true, nil
	case "quit!", "q!":
		return true, nil
	default:
		return false, code.ErrorInvalidParams.WithDetails("unknown command " + verb + ", try help")
	}
	return false, nil
}

func (sh *shell) target(rest []string) (*domain.Bonsai, error) {
	if len(rest) == 0 {
		return sh.sess.Current()
	}
	return sh.sess.Resolve(strings.Join(rest, " "))
}

func (sh *shell) print(b *domain.Bonsai, err error) error {
	if err != nil {
		return err
	}
	return writeRecord(sh.out, b)
}

// loop reads commands until quit or end of input
func (sh *shell) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(sh.out, "> ")
	for scanner.Scan() {
		quit, err := sh.exec(scanner.Text())
		if err != nil {
			fmt.Fprintln(sh.out, "error:", apperrors.FromError(err).Error())
		}
		if quit {
			return nil
		}
		fmt.Fprint(sh.out, "> ")
	}
	fmt.Fprintln(sh.out)
	if s := sh.sess; s.Dirty() {
		fmt.Fprintln(sh.out, "input closed with unsaved changes, they were discarded")
	}
	return scanner.Err()
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse and edit the collection interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App, s *service.Session) error {
			sh := &shell{ctx: cmd.Context(), sess: s, out: cmd.OutOrStdout()}
			fmt.Fprintf(sh.out, "%s v%s, %d trees. Type help for commands.\n", app.Name, app.Version, s.WorkingSet().Len())
			if b, err := s.Current(); err == nil {
				_ = writeRecord(sh.out, b)
			}
			return sh.loop(cmd.InOrStdin())
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
