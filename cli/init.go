package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// DefaultConfigName is the file name init writes and that users typically
// pass to summarize.
const DefaultConfigName = "parserconfig.json"

type InitCmd struct {
	Dir   string `help:"Directory to write the sample schema document into." arg:"" optional:"" default:"."`
	Force bool   `help:"Overwrite an existing schema document without asking." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	path := filepath.Join(cmd.Dir, DefaultConfigName)

	if _, err := os.Stat(path); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("%s already exists. Overwrite it?", path))
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("refusing to overwrite %s", path)
		}
	}

	if err := os.MkdirAll(cmd.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write schema document: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote sample schema to %s", styles.Path(path)))
	printInfof(ctx.Stdout, "try: expensetally summarize %s <ledger file>", path)

	return nil
}

// sampleConfig is a working schema for a ledger shaped like:
//
//	2021-08-01
//	- 10 | Coffee
//	+ 500 | Salary
//	o c 1.250 | Online order (gift)
//	- 2.500 | Groceries >>> weekly shop
//	milk, bread
//	<<<
const sampleConfig = `{
  "parserSettings": {
    "incomeSettings": { "symbol": "+" },
    "specialItemPrefixes": ["*"],
    "thousandsSeparatorChars": ["."],
    "multilineOpenStrings": [">>>"],
    "multilineCloseStrings": ["<<<"],
    "dateFormats": ["yyyy-MM-dd", "yyyy.MM.dd"],
    "failOnUnrecognizedPayments": false,
    "mandatoryPostfixForPaymentMethods": ["card"],
    "parsedBlockFormat": {
      "format": "<PAYMENT_METHOD_MARKER><PAYMENT_METHOD_POSTFIX><AMOUNT><AMOUNT_TITLE_SEPARATOR><TITLE><DETAILS><MORE_DETAILS>",
      "fields": {
        "PAYMENT_METHOD_MARKER": { "type": "regex", "pattern": "VAR(MARKERS)" },
        "PAYMENT_METHOD_POSTFIX": { "type": "regex", "pattern": "[ a-z]*" },
        "AMOUNT": { "type": "regex", "pattern": "\\s+([0-9.,]+)", "extractInnerGroup": true },
        "AMOUNT_TITLE_SEPARATOR": { "type": "regex", "pattern": "\\s*\\|\\s*" },
        "TITLE": { "type": "regex", "pattern": "[^|(>\\n]+" },
        "DETAILS": { "type": "regex", "pattern": "\\([^)]*\\)", "optional": true },
        "MORE_DETAILS": { "type": "regex", "pattern": ".*", "optional": true }
      },
      "variables": { "MARKERS": "[-+*o]" }
    }
  },
  "paymentMethods": {
    "cash": { "shortName": "cash", "displayName": "Cash", "prefixSymbol": "-" },
    "card": { "shortName": "card", "displayName": "Debit card", "prefixSymbol": "o", "postfixSymbols": ["c"] }
  },
  "expenseCategories": {
    "groceries": { "displayName": "Groceries", "primaryValue": "groceries", "alternativeValues": ["food", "market"] }
  }
}
`
