// Package summary aggregates parsed ledger entries into the totals the
// reporting layer renders: by payment method (expenses only), by day, and
// by item type. Grouping preserves first-seen order so reports follow the
// ledger's own ordering.
package summary

import (
	"github.com/shopspring/decimal"

	"expensetally/parser"
)

// UnrecognizedMethod is the grouping key for expense entries whose payment
// method could not be resolved (kept when the schema's fail-fast flag is
// off).
const UnrecognizedMethod = "(unrecognized)"

// Group is one aggregation bucket.
type Group struct {
	Key    string
	Amount int64
	Count  int
}

// Totals holds the three aggregate views over one parse run.
type Totals struct {
	// ByPaymentMethod groups expense entries by payment method display
	// name.
	ByPaymentMethod []Group
	// ByDay groups all entries by the date line they were found under.
	ByDay []Group
	// ByType groups all entries by item type.
	ByType []Group

	// Entries is the number of entries aggregated.
	Entries int
}

// Aggregate folds an ordered entry sequence into Totals.
func Aggregate(entries []*parser.Entry) *Totals {
	totals := &Totals{Entries: len(entries)}

	byMethod := newGrouping()
	byDay := newGrouping()
	byType := newGrouping()

	for _, entry := range entries {
		byDay.add(entry.Date, entry.Amount)
		byType.add(entry.Type.String(), entry.Amount)

		if entry.Type == parser.Expense {
			key := UnrecognizedMethod
			if entry.PaymentMethod != nil {
				key = entry.PaymentMethod.DisplayName
			}
			byMethod.add(key, entry.Amount)
		}
	}

	totals.ByPaymentMethod = byMethod.groups
	totals.ByDay = byDay.groups
	totals.ByType = byType.groups
	return totals
}

// ExpenseTotal returns the sum over all expense groups.
func (t *Totals) ExpenseTotal() int64 {
	var total int64
	for _, g := range t.ByPaymentMethod {
		total += g.Amount
	}
	return total
}

// ExpenseShare returns a payment-method group's share of the expense total
// as a percentage with one decimal place. Exact decimal arithmetic avoids
// float artifacts in rendered reports.
func (t *Totals) ExpenseShare(g Group) decimal.Decimal {
	total := t.ExpenseTotal()
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(g.Amount).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(1)
}

// grouping accumulates totals while preserving first-seen key order.
type grouping struct {
	index  map[string]int
	groups []Group
}

func newGrouping() *grouping {
	return &grouping{index: make(map[string]int)}
}

func (g *grouping) add(key string, amount int64) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, Group{Key: key})
	}
	g.groups[i].Amount += amount
	g.groups[i].Count++
}
