package output

import (
	"encoding/json"
	"io"

	"expensetally/summary"
)

// JSONReport is the machine-readable rendering of one summarize run.
type JSONReport struct {
	Entries         int         `json:"entries"`
	ExpenseTotal    int64       `json:"expense_total"`
	ByPaymentMethod []JSONGroup `json:"by_payment_method"`
	ByDay           []JSONGroup `json:"by_day"`
	ByType          []JSONGroup `json:"by_type"`
}

// JSONGroup is one aggregation bucket in JSON form.
type JSONGroup struct {
	Key     string  `json:"key"`
	Entries int     `json:"entries"`
	Amount  int64   `json:"amount"`
	Share   *string `json:"share,omitempty"`
}

// WriteJSON renders totals as indented JSON.
func WriteJSON(w io.Writer, totals *summary.Totals) error {
	report := JSONReport{
		Entries:      totals.Entries,
		ExpenseTotal: totals.ExpenseTotal(),
	}

	for _, g := range totals.ByPaymentMethod {
		share := totals.ExpenseShare(g).String() + "%"
		report.ByPaymentMethod = append(report.ByPaymentMethod, JSONGroup{
			Key:     g.Key,
			Entries: g.Count,
			Amount:  g.Amount,
			Share:   &share,
		})
	}
	for _, g := range totals.ByDay {
		report.ByDay = append(report.ByDay, JSONGroup{Key: g.Key, Entries: g.Count, Amount: g.Amount})
	}
	for _, g := range totals.ByType {
		report.ByType = append(report.ByType, JSONGroup{Key: g.Key, Entries: g.Count, Amount: g.Amount})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
