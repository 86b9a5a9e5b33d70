package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/internal/dto"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/convert"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return code.ErrorInvalidParams.WithDetails("output must be table or json, got " + format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := convert.ToJSON(v, true)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeRecords(w io.Writer, records []*domain.Bonsai, format string) error {
	if format == formatJSON {
		return writeJSON(w, dto.NewBonsaiDTOList(records))
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tNEXT FERTILIZE\tLAST PRUNING\tLAST REPOT\tLAST WIRING")
	for _, b := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Name, b.NextFertilize, b.LastPruning, b.LastRepot, b.LastWiring)
	}
	return tw.Flush()
}

// writeRecord prints one tree as label/value lines
func writeRecord(w io.Writer, b *domain.Bonsai) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "id:\t%d\n", b.ID)
	fmt.Fprintf(tw, "name:\t%s\n", b.Name)
	for _, f := range domain.Fields {
		fmt.Fprintf(tw, "%s:\t%s\n", f.Label(), b.Get(f))
	}
	return tw.Flush()
}

func writeHistory(w io.Writer, versions []*domain.BonsaiVersion, format string) error {
	list := dto.NewBonsaiVersionDTOList(versions)
	if format == formatJSON {
		return writeJSON(w, list)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "SEQ\tNAME\tNEXT FERTILIZE\tLAST PRUNING\tLAST REPOT\tLAST WIRING\tCHANGED")
	for _, v := range list {
		b := v.Bonsai
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", v.Seq, b.Name, b.NextFertilize, b.LastPruning, b.LastRepot, b.LastWiring, strings.Join(v.Changed, ","))
	}
	return tw.Flush()
}

// refArg joins positional args so names with spaces need no quoting
func refArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
