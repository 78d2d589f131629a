package parser

import (
	"fmt"

	"expensetally/schema"
)

// ItemType classifies a parsed entry.
type ItemType uint8

const (
	// Expense is the default classification for entries led by a payment
	// method marker.
	Expense ItemType = iota
	// Income marks entries led by the configured income symbol.
	Income
	// Special marks entries led by one of the special item prefixes.
	Special
)

var itemTypeNames = map[ItemType]string{
	Expense: "expense",
	Income:  "income",
	Special: "special",
}

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ItemType(%d)", t)
}

// Entry is one logical ledger transaction, built from the composite
// pattern's capture groups and classified against the compiled schema. An
// entry is complete only after classification; Parse never returns
// unclassified entries.
type Entry struct {
	// Date is the text of the date marker line the entry was found under.
	Date string

	Marker      string
	Postfix     string
	Amount      int64
	Title       string
	Separator   string
	Details     string
	MoreDetails string

	// PaymentMethod is the resolved method for expenses, nil for income,
	// special items and unrecognized expense markers.
	PaymentMethod *schema.PaymentMethod
	Type          ItemType
}

// UnrecognizedPaymentError aborts a run when the schema demands that every
// expense resolves to a known payment method.
type UnrecognizedPaymentError struct {
	Marker  string
	Postfix string
	Title   string
}

func (e *UnrecognizedPaymentError) Error() string {
	return fmt.Sprintf("unrecognized payment method (marker %q, postfix %q) for entry %q", e.Marker, e.Postfix, e.Title)
}
