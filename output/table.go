package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"expensetally/summary"
)

// maxKeyWidth caps grouping keys in tables; longer keys are truncated
// rune-width aware so wide characters don't break alignment.
const maxKeyWidth = 40

// TableRenderer renders totals as terminal tables.
type TableRenderer struct {
	styles *Styles
	width  int
}

// NewTableRenderer creates a renderer writing tables capped to the given
// terminal width. A width of 0 means unconstrained.
func NewTableRenderer(styles *Styles, width int) *TableRenderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &TableRenderer{styles: styles, width: width}
}

// TerminalWidth returns the width of the terminal behind w, or 0 when w is
// not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Render writes the three aggregate tables.
func (r *TableRenderer) Render(w io.Writer, totals *summary.Totals) {
	fmt.Fprintln(w, r.styles.Header("Expenses by payment method"))
	r.renderMethodTable(w, totals)
	fmt.Fprintln(w)

	fmt.Fprintln(w, r.styles.Header("Totals by day"))
	r.renderGroupTable(w, "Day", totals.ByDay)
	fmt.Fprintln(w)

	fmt.Fprintln(w, r.styles.Header("Totals by type"))
	r.renderGroupTable(w, "Type", totals.ByType)
}

func (r *TableRenderer) renderMethodTable(w io.Writer, totals *summary.Totals) {
	t := r.newTable(w)
	t.AppendHeader(table.Row{"Payment method", "Entries", "Amount", "Share"})

	for _, g := range totals.ByPaymentMethod {
		t.AppendRow(table.Row{
			truncateKey(g.Key),
			g.Count,
			g.Amount,
			r.styles.Dim(totals.ExpenseShare(g).String() + "%"),
		})
	}
	t.AppendFooter(table.Row{"Total", "", totals.ExpenseTotal(), ""})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Entries", Align: text.AlignRight},
		{Name: "Amount", Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Name: "Share", Align: text.AlignRight},
	})
	t.Render()
}

func (r *TableRenderer) renderGroupTable(w io.Writer, label string, groups []summary.Group) {
	t := r.newTable(w)
	t.AppendHeader(table.Row{label, "Entries", "Amount"})

	for _, g := range groups {
		t.AppendRow(table.Row{truncateKey(g.Key), g.Count, g.Amount})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Entries", Align: text.AlignRight},
		{Name: "Amount", Align: text.AlignRight},
	})
	t.Render()
}

func (r *TableRenderer) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if r.width > 0 {
		t.SetAllowedRowLength(r.width)
	}
	return t
}

func truncateKey(key string) string {
	if runewidth.StringWidth(key) <= maxKeyWidth {
		return key
	}
	return runewidth.Truncate(key, maxKeyWidth, "…")
}
