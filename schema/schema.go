// Package schema loads, validates and compiles the declarative parser
// configuration that drives ledger parsing. A schema document describes how
// entry lines are shaped (a format template with placeholder fields, each
// backed by a regex fragment or literal), which symbols map to payment
// methods, and how date marker lines look. Compile turns a validated
// document into an immutable Compiled artifact: one composite matching
// pattern, a set of date-recognition patterns and a payment-method registry.
//
// Documents are JSON or YAML with camelCase keys:
//
//	{
//	  "parserSettings": {
//	    "incomeSettings": {"symbol": "+"},
//	    "dateFormats": ["yyyy-MM-dd"],
//	    "parsedBlockFormat": {
//	      "format": "<PAYMENT_METHOD_MARKER>...",
//	      "fields": {"PAYMENT_METHOD_MARKER": {"type": "regex", "pattern": "VAR(MARKERS)"}},
//	      "variables": {"MARKERS": "[-+*o]"}
//	    }
//	  },
//	  "paymentMethods": {"cash": {"displayName": "Cash", "prefixSymbol": "-"}}
//	}
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType discriminates how a field definition is interpreted.
type FieldType string

const (
	// FieldTypeRegex treats Pattern as a regular expression fragment.
	FieldTypeRegex FieldType = "regex"
	// FieldTypeLiteral treats Value as literal text, quoted before use.
	FieldTypeLiteral FieldType = "literal"
)

// FieldDefinition describes one placeholder field of the block format.
type FieldDefinition struct {
	Type    FieldType `json:"type" yaml:"type"`
	Pattern string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Value   string    `json:"value,omitempty" yaml:"value,omitempty"`
	// Optional makes the whole capture group optional in the composite
	// pattern.
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
	// ExtractInnerGroup captures only the pattern's own single capturing
	// group instead of the whole pattern. Requires Type == regex and exactly
	// one capturing group in Pattern.
	ExtractInnerGroup bool `json:"extractInnerGroup,omitempty" yaml:"extractInnerGroup,omitempty"`
}

// BlockFormat is the ordered template describing one entry block, plus the
// field definitions its placeholders refer to and the variable table used
// inside field patterns via VAR(name) markers.
type BlockFormat struct {
	Format    string                      `json:"format" yaml:"format"`
	Fields    map[string]*FieldDefinition `json:"fields" yaml:"fields"`
	Variables map[string]string           `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// IncomeSettings holds the marker symbol that classifies an entry as income.
type IncomeSettings struct {
	Symbol string `json:"symbol" yaml:"symbol"`
}

// Settings carries the generic parser settings of a schema document.
type Settings struct {
	IncomeSettings      IncomeSettings `json:"incomeSettings" yaml:"incomeSettings"`
	SpecialItemPrefixes []string       `json:"specialItemPrefixes,omitempty" yaml:"specialItemPrefixes,omitempty"`

	// ThousandsSeparatorChars are stripped from amount text before integer
	// conversion.
	ThousandsSeparatorChars []string `json:"thousandsSeparatorChars,omitempty" yaml:"thousandsSeparatorChars,omitempty"`

	// MultilineOpenStrings and MultilineCloseStrings delimit multi-line
	// entry blocks in the ledger text.
	MultilineOpenStrings  []string `json:"multilineOpenStrings,omitempty" yaml:"multilineOpenStrings,omitempty"`
	MultilineCloseStrings []string `json:"multilineCloseStrings,omitempty" yaml:"multilineCloseStrings,omitempty"`

	// DateFormats are human date-format strings (yyyy, MM, dd tokens) used
	// to recognize date marker lines.
	DateFormats []string `json:"dateFormats" yaml:"dateFormats"`

	// FailOnUnrecognizedPayments aborts the whole run when an entry's
	// (marker, postfix) pair resolves to no payment method.
	FailOnUnrecognizedPayments bool `json:"failOnUnrecognizedPayments,omitempty" yaml:"failOnUnrecognizedPayments,omitempty"`

	// MandatoryPostfixForPaymentMethods lists payment methods (by key) that
	// must always be written with one of their postfix symbols. Methods not
	// listed also match without any postfix.
	MandatoryPostfixForPaymentMethods []string `json:"mandatoryPostfixForPaymentMethods,omitempty" yaml:"mandatoryPostfixForPaymentMethods,omitempty"`

	ParsedBlockFormat *BlockFormat `json:"parsedBlockFormat" yaml:"parsedBlockFormat"`
}

// PaymentMethod describes one way of paying and the symbols identifying it
// on an entry line.
type PaymentMethod struct {
	// Name is the registry key the method was configured under. Assigned at
	// load time, not part of the document value.
	Name string `json:"-" yaml:"-"`

	ShortName      string   `json:"shortName" yaml:"shortName"`
	DisplayName    string   `json:"displayName" yaml:"displayName"`
	PrefixSymbol   string   `json:"prefixSymbol" yaml:"prefixSymbol"`
	PostfixSymbols []string `json:"postfixSymbols,omitempty" yaml:"postfixSymbols,omitempty"`
}

// Category is an informational expense classification tag. Categories are
// not used for routing; they ride along on the compiled schema for
// consumers that want them.
type Category struct {
	// Name is the registry key, assigned at load time.
	Name string `json:"-" yaml:"-"`

	DisplayName       string   `json:"displayName" yaml:"displayName"`
	PrimaryValue      string   `json:"primaryValue" yaml:"primaryValue"`
	AlternativeValues []string `json:"alternativeValues,omitempty" yaml:"alternativeValues,omitempty"`
}

// Document is the raw deserialized schema document, prior to compilation.
type Document struct {
	ParserSettings    *Settings                 `json:"parserSettings" yaml:"parserSettings"`
	PaymentMethods    map[string]*PaymentMethod `json:"paymentMethods,omitempty" yaml:"paymentMethods,omitempty"`
	ExpenseCategories map[string]*Category      `json:"expenseCategories,omitempty" yaml:"expenseCategories,omitempty"`
}

// Load reads and deserializes a schema document from disk. YAML is selected
// by the .yaml/.yml extension, everything else is treated as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON deserializes a JSON schema document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode schema document: %w", err)
	}
	return initDocument(&doc)
}

// ParseYAML deserializes a YAML schema document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode schema document: %w", err)
	}
	return initDocument(&doc)
}

// initDocument assigns registry keys back onto their values and checks the
// document skeleton is present.
func initDocument(doc *Document) (*Document, error) {
	if doc.ParserSettings == nil {
		return nil, configErrorf("parserSettings", "section is missing")
	}
	if doc.ParserSettings.ParsedBlockFormat == nil {
		return nil, configErrorf("parserSettings.parsedBlockFormat", "section is missing")
	}

	for name, pm := range doc.PaymentMethods {
		if pm == nil {
			return nil, configErrorf("paymentMethods."+name, "definition is empty")
		}
		pm.Name = name
	}
	for name, cat := range doc.ExpenseCategories {
		if cat == nil {
			return nil, configErrorf("expenseCategories."+name, "definition is empty")
		}
		cat.Name = name
	}

	return doc, nil
}
