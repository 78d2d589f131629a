package schema

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// testDocument returns a minimal valid document that the tests below
// mutate.
func testDocument() *Document {
	return &Document{
		ParserSettings: &Settings{
			IncomeSettings:          IncomeSettings{Symbol: "+"},
			SpecialItemPrefixes:     []string{"*"},
			ThousandsSeparatorChars: []string{"."},
			MultilineOpenStrings:    []string{">>>"},
			MultilineCloseStrings:   []string{"<<<"},
			DateFormats:             []string{"yyyy-MM-dd"},
			ParsedBlockFormat: &BlockFormat{
				Format: "<PAYMENT_METHOD_MARKER><PAYMENT_METHOD_POSTFIX><AMOUNT><AMOUNT_TITLE_SEPARATOR><TITLE><DETAILS><MORE_DETAILS>",
				Fields: map[string]*FieldDefinition{
					"PAYMENT_METHOD_MARKER":  {Type: FieldTypeRegex, Pattern: `VAR(MARKERS)`},
					"PAYMENT_METHOD_POSTFIX": {Type: FieldTypeRegex, Pattern: `[ a-z]*`},
					"AMOUNT":                 {Type: FieldTypeRegex, Pattern: `\s+([0-9.,]+)`, ExtractInnerGroup: true},
					"AMOUNT_TITLE_SEPARATOR": {Type: FieldTypeRegex, Pattern: `\s*\|\s*`},
					"TITLE":                  {Type: FieldTypeRegex, Pattern: `[^|(>\n]+`},
					"DETAILS":                {Type: FieldTypeRegex, Pattern: `\([^)]*\)`, Optional: true},
					"MORE_DETAILS":           {Type: FieldTypeRegex, Pattern: `.*`, Optional: true},
				},
				Variables: map[string]string{"MARKERS": `[-+*o]`},
			},
		},
		PaymentMethods: map[string]*PaymentMethod{
			"cash": {Name: "cash", ShortName: "cash", DisplayName: "Cash", PrefixSymbol: "-"},
		},
	}
}

func TestCompileValidDocument(t *testing.T) {
	compiled, err := Compile(testDocument())
	assert.NoError(t, err)

	// One named group per non-repeated field, in template order.
	names := compiled.Pattern.SubexpNames()
	var groups []string
	for _, name := range names {
		if name != "" {
			groups = append(groups, name)
		}
	}
	assert.Equal(t, []string{
		"PAYMENT_METHOD_MARKER",
		"PAYMENT_METHOD_POSTFIX",
		"AMOUNT",
		"AMOUNT_TITLE_SEPARATOR",
		"TITLE",
		"DETAILS",
		"MORE_DETAILS",
	}, groups)

	assert.Equal(t, 1, len(compiled.DatePatterns))
	assert.Equal(t, "+", compiled.IncomeSymbol)
	assert.True(t, compiled.SpecialPrefixes["*"])
}

func TestCompileResolvesVariables(t *testing.T) {
	compiled, err := Compile(testDocument())
	assert.NoError(t, err)

	// The VAR(MARKERS) reference is substituted at load time.
	assert.Contains(t, compiled.Pattern.String(), "[-+*o]")
	assert.NotContains(t, compiled.Pattern.String(), "VAR(")
}

func TestCompileUndefinedVariable(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Fields["TITLE"].Pattern = `VAR(NOPE)`

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "VAR(NOPE)")
}

func TestCompileMissingMandatoryField(t *testing.T) {
	doc := testDocument()
	format := doc.ParserSettings.ParsedBlockFormat
	delete(format.Fields, "AMOUNT")
	format.Format = strings.ReplaceAll(format.Format, "<AMOUNT>", "")

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AMOUNT")

	cerr, ok := err.(*ConfigError)
	assert.True(t, ok)
	assert.NotZero(t, cerr.Allowed)
}

func TestCompilePlaceholderWithoutDefinition(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Format += "<EXTRA>"

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EXTRA")
}

func TestCompileUnreferencedCustomField(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Fields["NOTE"] = &FieldDefinition{Type: FieldTypeRegex, Pattern: `.*`}

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NOTE")
}

func TestCompileTemplateWithoutPlaceholders(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Format = "no placeholders here"

	_, err := Compile(doc)
	assert.Error(t, err)
}

func TestCompileEmptyPlaceholderName(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Format = "<>"

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty placeholder")
}

func TestCompileRepeatedCustomFieldGetsSuffixedGroup(t *testing.T) {
	doc := testDocument()
	format := doc.ParserSettings.ParsedBlockFormat
	format.Format += "<NOTE><NOTE>"
	format.Fields["NOTE"] = &FieldDefinition{Type: FieldTypeRegex, Pattern: `x?`}

	compiled, err := Compile(doc)
	assert.NoError(t, err)
	assert.Contains(t, compiled.Pattern.String(), "(?P<NOTE>")
	assert.Contains(t, compiled.Pattern.String(), "(?P<NOTE_2>")
}

func TestCompileRepeatedMandatoryFieldFails(t *testing.T) {
	doc := testDocument()
	doc.ParserSettings.ParsedBlockFormat.Format += "<AMOUNT>"

	_, err := Compile(doc)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "AMOUNT")
}

func TestGroupedSubPattern(t *testing.T) {
	tests := []struct {
		name  string
		group string
		def   *FieldDefinition
		want  string
	}{
		{
			name:  "plain regex",
			group: "TITLE",
			def:   &FieldDefinition{Type: FieldTypeRegex, Pattern: `[a-z]+`},
			want:  `(?P<TITLE>[a-z]+)`,
		},
		{
			name:  "optional regex",
			group: "DETAILS",
			def:   &FieldDefinition{Type: FieldTypeRegex, Pattern: `[a-z]+`, Optional: true},
			want:  `(?P<DETAILS>[a-z]+)?`,
		},
		{
			name:  "literal is quoted",
			group: "AMOUNT_TITLE_SEPARATOR",
			def:   &FieldDefinition{Type: FieldTypeLiteral, Value: `|`},
			want:  `(?P<AMOUNT_TITLE_SEPARATOR>\|)`,
		},
		{
			name:  "inner group rewrapped",
			group: "AMOUNT",
			def:   &FieldDefinition{Type: FieldTypeRegex, Pattern: `\s+([0-9]+)`, ExtractInnerGroup: true},
			want:  `\s+(?P<AMOUNT>[0-9]+)`,
		},
		{
			name:  "inner group keeps trailing quantifier",
			group: "AMOUNT",
			def:   &FieldDefinition{Type: FieldTypeRegex, Pattern: `\s+([0-9]+)? end`, ExtractInnerGroup: true},
			want:  `\s+(?P<AMOUNT>[0-9]+)? end`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := groupedSubPattern(tt.group, tt.def)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateExtractInnerGroup(t *testing.T) {
	tests := []struct {
		name    string
		def     *FieldDefinition
		wantErr bool
	}{
		{
			name: "single group ok",
			def:  &FieldDefinition{Type: FieldTypeRegex, Pattern: `\s+([0-9]+)`, ExtractInnerGroup: true},
		},
		{
			name:    "no group",
			def:     &FieldDefinition{Type: FieldTypeRegex, Pattern: `[0-9]+`, ExtractInnerGroup: true},
			wantErr: true,
		},
		{
			name:    "two groups",
			def:     &FieldDefinition{Type: FieldTypeRegex, Pattern: `([a-z])([0-9])`, ExtractInnerGroup: true},
			wantErr: true,
		},
		{
			name:    "unbalanced",
			def:     &FieldDefinition{Type: FieldTypeRegex, Pattern: `([0-9]+`, ExtractInnerGroup: true},
			wantErr: true,
		},
		{
			name:    "literal with inner group flag",
			def:     &FieldDefinition{Type: FieldTypeLiteral, Value: `x`, ExtractInnerGroup: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldDefinition("FIELD", tt.def)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatePatterns(t *testing.T) {
	tests := []struct {
		format  string
		line    string
		matches bool
	}{
		{"yyyy-MM-dd", "2021-08-01", true},
		{"yyyy-MM-dd", "Sunday 2021-08-01", true}, // anchored at end-of-line only
		{"yyyy-MM-dd", "2021-08-01 extra", false},
		{"yyyy-MM-dd", "- 10 | Coffee", false},
		{"yyyy.MM.dd", "2021.08.01", true},
		{"yyyy.MM.dd", "2021x08x01", false}, // separators are literal
	}

	for _, tt := range tests {
		t.Run(tt.format+" "+tt.line, func(t *testing.T) {
			patterns, err := buildDatePatterns([]string{tt.format})
			assert.NoError(t, err)
			assert.Equal(t, tt.matches, patterns[0].MatchString(tt.line))
		})
	}
}

func TestDateFormatValidation(t *testing.T) {
	_, err := buildDatePatterns([]string{"no tokens at all"})
	assert.Error(t, err)

	_, err = buildDatePatterns(nil)
	assert.Error(t, err)
}
