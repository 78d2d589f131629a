package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"

	"expensetally/parser"
	"expensetally/schema"
	"expensetally/summary"
)

func TestWriteJSON(t *testing.T) {
	cash := &schema.PaymentMethod{Name: "cash", DisplayName: "Cash", PrefixSymbol: "-"}
	totals := summary.Aggregate([]*parser.Entry{
		{Date: "2021-08-01", Amount: 10, Type: parser.Expense, PaymentMethod: cash},
		{Date: "2021-08-01", Amount: 500, Type: parser.Income},
	})

	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, totals))

	var report JSONReport
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, 2, report.Entries)
	assert.Equal(t, int64(10), report.ExpenseTotal)
	assert.Equal(t, 1, len(report.ByPaymentMethod))
	assert.Equal(t, "Cash", report.ByPaymentMethod[0].Key)
	assert.Equal(t, 1, len(report.ByDay))
	assert.Equal(t, int64(510), report.ByDay[0].Amount)
	assert.Equal(t, 2, len(report.ByType))
}

func TestTruncateKey(t *testing.T) {
	assert.Equal(t, "short", truncateKey("short"))

	long := "a very long grouping key that overflows the column width limit"
	truncated := truncateKey(long)
	assert.NotEqual(t, long, truncated)
	assert.Contains(t, truncated, "…")
}
