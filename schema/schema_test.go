package schema

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

const minimalJSON = `{
  "parserSettings": {
    "incomeSettings": { "symbol": "+" },
    "dateFormats": ["yyyy-MM-dd"],
    "parsedBlockFormat": {
      "format": "<PAYMENT_METHOD_MARKER><PAYMENT_METHOD_POSTFIX><AMOUNT><AMOUNT_TITLE_SEPARATOR><TITLE><DETAILS><MORE_DETAILS>",
      "fields": {
        "PAYMENT_METHOD_MARKER": { "type": "regex", "pattern": "[-+]" },
        "PAYMENT_METHOD_POSTFIX": { "type": "regex", "pattern": "[a-z]*" },
        "AMOUNT": { "type": "regex", "pattern": "\\s+([0-9]+)", "extractInnerGroup": true },
        "AMOUNT_TITLE_SEPARATOR": { "type": "regex", "pattern": "\\s*\\|\\s*" },
        "TITLE": { "type": "regex", "pattern": "[^|\\n]+" },
        "DETAILS": { "type": "regex", "pattern": "\\([^)]*\\)", "optional": true },
        "MORE_DETAILS": { "type": "regex", "pattern": ".*", "optional": true }
      }
    }
  },
  "paymentMethods": {
    "cash": { "displayName": "Cash", "prefixSymbol": "-" }
  },
  "expenseCategories": {
    "groceries": { "displayName": "Groceries", "primaryValue": "groceries" }
  }
}`

const minimalYAML = `
parserSettings:
  incomeSettings:
    symbol: "+"
  dateFormats: ["yyyy-MM-dd"]
  parsedBlockFormat:
    format: "<PAYMENT_METHOD_MARKER><PAYMENT_METHOD_POSTFIX><AMOUNT><AMOUNT_TITLE_SEPARATOR><TITLE><DETAILS><MORE_DETAILS>"
    fields:
      PAYMENT_METHOD_MARKER: { type: regex, pattern: "[-+]" }
      PAYMENT_METHOD_POSTFIX: { type: regex, pattern: "[a-z]*" }
      AMOUNT: { type: regex, pattern: '\s+([0-9]+)', extractInnerGroup: true }
      AMOUNT_TITLE_SEPARATOR: { type: regex, pattern: '\s*\|\s*' }
      TITLE: { type: regex, pattern: '[^|\n]+' }
      DETAILS: { type: regex, pattern: '\([^)]*\)', optional: true }
      MORE_DETAILS: { type: regex, pattern: ".*", optional: true }
paymentMethods:
  cash: { displayName: Cash, prefixSymbol: "-" }
`

func TestParseJSON(t *testing.T) {
	doc, err := ParseJSON([]byte(minimalJSON))
	assert.NoError(t, err)

	// Registry keys are assigned back onto their values as lookup names.
	assert.Equal(t, "cash", doc.PaymentMethods["cash"].Name)
	assert.Equal(t, "groceries", doc.ExpenseCategories["groceries"].Name)

	_, err = Compile(doc)
	assert.NoError(t, err)
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(minimalYAML))
	assert.NoError(t, err)
	assert.Equal(t, "cash", doc.PaymentMethods["cash"].Name)

	_, err = Compile(doc)
	assert.NoError(t, err)
}

func TestParseJSONMissingSections(t *testing.T) {
	_, err := ParseJSON([]byte(`{}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"parserSettings": {}}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`not json`))
	assert.Error(t, err)
}
