// Package parser turns raw ledger text into an ordered sequence of
// classified entries, driven entirely by a compiled schema. It segments the
// text into logical entry blocks with a line-scanning state machine, applies
// the schema's composite pattern to each block, and classifies every match
// as expense, income or special.
//
// Parsing is a one-shot, single-threaded batch operation: the whole file is
// buffered, scanned once to build the block and date-line index, then each
// block is matched in order. A block that fails to match is logged and
// dropped; the run continues with the remaining blocks.
package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	applog "expensetally/log"
	"expensetally/schema"
)

// Parser applies a compiled schema to ledger text. The compiled schema is
// never mutated, so one Parser may serve any number of sequential Parse
// calls.
type Parser struct {
	compiled *schema.Compiled
	log      *applog.Logger
}

// New creates a Parser for the given compiled schema. The logger receives
// per-block diagnostics (match failures, unrecognized payment methods).
func New(compiled *schema.Compiled, logger *applog.Logger) *Parser {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Parser{
		compiled: compiled,
		log:      logger.WithComponent(applog.ComponentParser),
	}
}

// ParseFile reads and parses a ledger file.
func (p *Parser) ParseFile(path string) ([]*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	return p.Parse(string(data))
}

// Parse segments the ledger text into blocks and builds one classified
// Entry per matching block, in input order.
func (p *Parser) Parse(text string) ([]*Entry, error) {
	lines := strings.Split(text, "\n")

	seg := p.scan(lines)
	if seg.openStart >= 0 {
		// A block was opened but never closed before EOF; drop it rather
		// than guess where it was meant to end.
		p.log.Warn("dropping unterminated multi-line block",
			applog.FieldLine, seg.openStart+1)
	}

	dates := datesInEffect(len(lines), seg.dates)

	entries := make([]*Entry, 0, len(seg.blocks))
	for _, blk := range seg.blocks {
		joined := strings.Join(lines[blk.start:blk.end+1], "\n")

		match := p.compiled.Pattern.FindStringSubmatch(joined)
		if match == nil {
			p.log.Error("block does not match the entry format",
				applog.FieldLine, blk.start+1,
				applog.FieldBlock, joined)
			continue
		}

		entry, err := p.entryFromMatch(match, dates[blk.start])
		if err != nil {
			p.log.Error("failed to build entry from block",
				applog.FieldLine, blk.start+1,
				applog.FieldError, err)
			continue
		}

		if err := p.classify(entry); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// entryFromMatch reads one capture group per mandatory field and converts
// the amount text to an integer.
func (p *Parser) entryFromMatch(match []string, date string) (*Entry, error) {
	entry := &Entry{
		Date:        date,
		Marker:      p.compiled.Group(match, schema.FieldPaymentMethodMarker),
		Postfix:     p.compiled.Group(match, schema.FieldPaymentMethodPostfix),
		Separator:   p.compiled.Group(match, schema.FieldAmountTitleSeparator),
		Title:       strings.TrimSpace(p.compiled.Group(match, schema.FieldTitle)),
		Details:     p.compiled.Group(match, schema.FieldDetails),
		MoreDetails: p.compiled.Group(match, schema.FieldMoreDetails),
	}

	amount, err := p.convertAmount(p.compiled.Group(match, schema.FieldAmount))
	if err != nil {
		return nil, err
	}
	entry.Amount = amount

	return entry, nil
}

// convertAmount strips the configured thousands separators and converts the
// remaining text to an integer.
func (p *Parser) convertAmount(text string) (int64, error) {
	for _, sep := range p.compiled.ThousandsSeparators {
		text = strings.ReplaceAll(text, sep, "")
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not an integer: %w", text, err)
	}
	return amount, nil
}

// classify assigns the entry's item type and resolves its payment method.
// An unrecognized (marker, postfix) pair is kept as an expense without a
// payment method unless the schema's fail-fast flag turns it into a hard
// error.
func (p *Parser) classify(entry *Entry) error {
	switch {
	case entry.Marker == p.compiled.IncomeSymbol:
		entry.Type = Income

	case p.compiled.SpecialPrefixes[entry.Marker]:
		entry.Type = Special

	default:
		entry.Type = Expense
		method := p.compiled.Registry.Lookup(entry.Marker, entry.Postfix)
		if method == nil {
			p.log.Error("unrecognized payment method",
				applog.FieldMarker, entry.Marker,
				applog.FieldPostfix, entry.Postfix,
				applog.FieldTitle, entry.Title,
				applog.FieldDate, entry.Date)
			if p.compiled.FailOnUnrecognizedPayments {
				return &UnrecognizedPaymentError{
					Marker:  entry.Marker,
					Postfix: entry.Postfix,
					Title:   entry.Title,
				}
			}
			return nil
		}
		entry.PaymentMethod = method
	}

	return nil
}
