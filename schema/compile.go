package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Compiled is the immutable artifact produced from a valid schema document.
// It is safe to share read-only across any number of sequential parse runs.
type Compiled struct {
	// Pattern is the single composite regex assembled from all field
	// sub-patterns in template order, compiled in dot-matches-newline mode
	// so it applies to joined multi-line blocks.
	Pattern *regexp.Regexp

	// DatePatterns recognize date marker lines, one per configured date
	// format, in configuration order.
	DatePatterns []*regexp.Regexp

	// Registry resolves (marker, postfix) pairs to payment methods.
	Registry *Registry

	// Categories are the informational expense categories, keyed by their
	// registry name.
	Categories map[string]*Category

	IncomeSymbol        string
	SpecialPrefixes     map[string]bool
	ThousandsSeparators []string
	MultilineOpen       []string
	MultilineClose      []string

	// FailOnUnrecognizedPayments turns an unresolved payment method from a
	// logged warning into a run-aborting error.
	FailOnUnrecognizedPayments bool

	groupIndex map[string]int
}

// Group returns the capture value for a mandatory field from a match
// produced by Pattern.FindStringSubmatch. Missing or non-participating
// groups yield the empty string.
func (c *Compiled) Group(match []string, field FieldName) string {
	idx, ok := c.groupIndex[field.GroupName()]
	if !ok || idx >= len(match) {
		return ""
	}
	return match[idx]
}

// IsDateLine reports whether the line matches any configured date format,
// and returns the trimmed date text when it does.
func (c *Compiled) IsDateLine(line string) (string, bool) {
	for _, re := range c.DatePatterns {
		if re.MatchString(line) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// placeholderRe captures the NAME of each <NAME> token in a format
// template. An empty name is caught by validation afterwards.
var (
	placeholderRe = regexp.MustCompile(`<([^<>]*)>`)
	groupNameRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	varRefRe      = regexp.MustCompile(`VAR\(([^()]*)\)`)
)

// Compile validates a schema document and builds its Compiled artifact.
// Every validation failure is a *ConfigError and aborts the load; there is
// no partial result.
func Compile(doc *Document) (*Compiled, error) {
	settings := doc.ParserSettings
	format := settings.ParsedBlockFormat

	placeholders, err := extractPlaceholders(format.Format)
	if err != nil {
		return nil, err
	}

	fields, err := canonicalFields(format, placeholders)
	if err != nil {
		return nil, err
	}

	if err := resolveVariables(fields, format.Variables); err != nil {
		return nil, err
	}

	pattern, err := buildCompositePattern(placeholders, fields)
	if err != nil {
		return nil, err
	}

	datePatterns, err := buildDatePatterns(settings.DateFormats)
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(doc)
	if err != nil {
		return nil, err
	}

	special := make(map[string]bool, len(settings.SpecialItemPrefixes))
	for _, prefix := range settings.SpecialItemPrefixes {
		special[prefix] = true
	}

	compiled := &Compiled{
		Pattern:                    pattern,
		DatePatterns:               datePatterns,
		Registry:                   registry,
		Categories:                 doc.ExpenseCategories,
		IncomeSymbol:               settings.IncomeSettings.Symbol,
		SpecialPrefixes:            special,
		ThousandsSeparators:        settings.ThousandsSeparatorChars,
		MultilineOpen:              settings.MultilineOpenStrings,
		MultilineClose:             settings.MultilineCloseStrings,
		FailOnUnrecognizedPayments: settings.FailOnUnrecognizedPayments,
		groupIndex:                 make(map[string]int),
	}

	for i, name := range pattern.SubexpNames() {
		if name != "" {
			compiled.groupIndex[name] = i
		}
	}

	return compiled, nil
}

// extractPlaceholders pulls the ordered placeholder names out of a format
// template. The template must contain at least one placeholder and none may
// be empty.
func extractPlaceholders(format string) ([]string, error) {
	matches := placeholderRe.FindAllStringSubmatch(format, -1)
	if len(matches) == 0 {
		return nil, configErrorf("parsedBlockFormat.format", "no <placeholder> tokens found in %q", format)
	}

	placeholders := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if name == "" {
			return nil, configErrorf("parsedBlockFormat.format", "empty placeholder name in %q", format)
		}
		if !groupNameRe.MatchString(name) {
			return nil, configErrorf("parsedBlockFormat.format",
				"placeholder name %q must start with a letter and contain only letters, digits and underscores", name)
		}
		placeholders = append(placeholders, CanonicalFieldName(name))
	}
	return placeholders, nil
}

// canonicalFields validates the field map against the template and the
// mandatory vocabulary, returning definitions keyed by canonical name.
func canonicalFields(format *BlockFormat, placeholders []string) (map[string]*FieldDefinition, error) {
	fields := make(map[string]*FieldDefinition, len(format.Fields))
	for name, def := range format.Fields {
		canon := CanonicalFieldName(name)
		if _, ok := fields[canon]; ok {
			return nil, configErrorf("parsedBlockFormat.fields", "field %q is defined more than once", canon)
		}
		if def == nil {
			return nil, configErrorf("parsedBlockFormat.fields."+name, "definition is empty")
		}
		fields[canon] = def
	}

	referenced := make(map[string]bool, len(placeholders))
	for _, name := range placeholders {
		referenced[name] = true
		if _, ok := fields[name]; !ok {
			return nil, configErrorf("parsedBlockFormat.format", "placeholder <%s> has no field definition", name)
		}
	}

	// The mandatory vocabulary must be fully configured.
	for _, mandatory := range MandatoryFields {
		if _, ok := fields[string(mandatory)]; !ok {
			cerr := configErrorf("parsedBlockFormat.fields", "mandatory field %q is missing", string(mandatory))
			cerr.Allowed = mandatoryFieldNames()
			return nil, cerr
		}
	}

	// Custom fields are permitted, but only when the template references
	// them; a dangling definition is a configuration mistake.
	for name := range fields {
		if !IsMandatoryField(name) && !referenced[name] {
			return nil, configErrorf("parsedBlockFormat.fields",
				"custom field %q is defined but never referenced by the format template", name)
		}
	}

	for name, def := range fields {
		if err := validateFieldDefinition(name, def); err != nil {
			return nil, err
		}
	}

	return fields, nil
}

func validateFieldDefinition(name string, def *FieldDefinition) error {
	switch def.Type {
	case FieldTypeRegex:
		if def.Pattern == "" {
			return configErrorf("parsedBlockFormat.fields."+name, "regex field has no pattern")
		}
	case FieldTypeLiteral:
		if def.Value == "" {
			return configErrorf("parsedBlockFormat.fields."+name, "literal field has no value")
		}
		if def.ExtractInnerGroup {
			return configErrorf("parsedBlockFormat.fields."+name, "extractInnerGroup requires a regex field")
		}
	default:
		cerr := configErrorf("parsedBlockFormat.fields."+name, "unknown field type %q", def.Type)
		cerr.Allowed = []string{string(FieldTypeRegex), string(FieldTypeLiteral)}
		return cerr
	}

	if def.ExtractInnerGroup {
		opens := strings.Count(def.Pattern, "(")
		closes := strings.Count(def.Pattern, ")")
		if opens != closes {
			return configErrorf("parsedBlockFormat.fields."+name,
				"extractInnerGroup pattern %q has unbalanced parentheses", def.Pattern)
		}
		if opens != 1 {
			return configErrorf("parsedBlockFormat.fields."+name,
				"extractInnerGroup pattern %q must contain exactly one capturing group, found %d", def.Pattern, opens)
		}
	}

	return nil
}

// resolveVariables substitutes VAR(name) markers in every regex field
// pattern from the variable table. Substitution is a one-time literal
// replacement performed here at load time.
func resolveVariables(fields map[string]*FieldDefinition, variables map[string]string) error {
	for name, def := range fields {
		if def.Type != FieldTypeRegex {
			continue
		}

		var unresolved string
		resolved := varRefRe.ReplaceAllStringFunc(def.Pattern, func(ref string) string {
			varName := varRefRe.FindStringSubmatch(ref)[1]
			value, ok := variables[varName]
			if !ok {
				if unresolved == "" {
					unresolved = varName
				}
				return ref
			}
			return value
		})
		if unresolved != "" {
			cerr := configErrorf("parsedBlockFormat.fields."+name, "undefined variable VAR(%s)", unresolved)
			cerr.Allowed = sortedKeys(variables)
			return cerr
		}

		def.Pattern = resolved
	}
	return nil
}

// buildCompositePattern assembles the single matching pattern from the
// placeholder sequence. Each field's sub-pattern is wrapped in a named
// capture group; a repeated custom field gets a suffixed group name, a
// repeated mandatory field is fatal.
func buildCompositePattern(placeholders []string, fields map[string]*FieldDefinition) (*regexp.Regexp, error) {
	var b strings.Builder
	// (?s) lets the pattern match across line boundaries of joined
	// multi-line blocks.
	b.WriteString("(?s)")

	seen := make(map[string]int, len(placeholders))
	for _, name := range placeholders {
		group := name
		if n := seen[name]; n > 0 {
			if IsMandatoryField(name) {
				return nil, configErrorf("parsedBlockFormat.format",
					"mandatory field <%s> appears more than once in the template", name)
			}
			group = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name]++

		sub, err := groupedSubPattern(group, fields[name])
		if err != nil {
			return nil, err
		}
		b.WriteString(sub)
	}

	pattern, err := regexp.Compile(b.String())
	if err != nil {
		return nil, configErrorf("parsedBlockFormat", "composite pattern does not compile: %v", err)
	}
	return pattern, nil
}

// groupedSubPattern wraps one field's pattern in the named capture group it
// contributes to the composite pattern.
func groupedSubPattern(group string, def *FieldDefinition) (string, error) {
	if def.Type == FieldTypeLiteral {
		sub := "(?P<" + group + ">" + regexp.QuoteMeta(def.Value) + ")"
		if def.Optional {
			sub += "?"
		}
		return sub, nil
	}

	if !def.ExtractInnerGroup {
		sub := "(?P<" + group + ">" + def.Pattern + ")"
		if def.Optional {
			sub += "?"
		}
		return sub, nil
	}

	// Re-wrap only the pattern's own capturing group with the target name,
	// keeping any quantifier attached to the original group.
	pat := def.Pattern
	open := strings.Index(pat, "(")
	closing := strings.Index(pat, ")")
	if open == -1 || closing == -1 || closing < open {
		return "", configErrorf("parsedBlockFormat.fields."+group,
			"extractInnerGroup pattern %q has no usable capturing group", pat)
	}

	inner := pat[open+1 : closing]
	rest := pat[closing+1:]
	quantifier := ""
	if rest != "" && strings.ContainsAny(rest[:1], "*+?") {
		quantifier = rest[:1]
		rest = rest[1:]
	}

	return pat[:open] + "(?P<" + group + ">" + inner + ")" + quantifier + rest, nil
}

// Date-format tokens translate to Go time layouts for the smoke check and
// to digit patterns for line recognition.
var dateTokens = []struct {
	token   string
	layout  string
	pattern string
}{
	{"yyyy", "2006", `\d{4}`},
	{"MM", "01", `\d{2}`},
	{"dd", "02", `\d{2}`},
}

// buildDatePatterns converts every configured date-format string into an
// end-of-line anchored recognition pattern, after smoke-checking the format
// itself is well-formed.
func buildDatePatterns(formats []string) ([]*regexp.Regexp, error) {
	if len(formats) == 0 {
		return nil, configErrorf("parserSettings.dateFormats", "at least one date format is required")
	}

	patterns := make([]*regexp.Regexp, 0, len(formats))
	for _, format := range formats {
		if err := smokeCheckDateFormat(format); err != nil {
			return nil, err
		}

		re, err := regexp.Compile(datePatternString(format))
		if err != nil {
			return nil, configErrorf("parserSettings.dateFormats", "format %q compiles to an invalid pattern: %v", format, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// smokeCheckDateFormat asserts a date-format string is self-consistent by
// formatting the current date with it and parsing the result back. This only
// validates the format string, not that it matches any real ledger data.
func smokeCheckDateFormat(format string) error {
	layout := format
	tokens := 0
	for _, t := range dateTokens {
		if strings.Contains(layout, t.token) {
			layout = strings.ReplaceAll(layout, t.token, t.layout)
			tokens++
		}
	}
	if tokens == 0 {
		cerr := configErrorf("parserSettings.dateFormats", "format %q contains no date tokens", format)
		cerr.Allowed = []string{"yyyy", "MM", "dd"}
		return cerr
	}

	now := time.Now()
	if _, err := time.Parse(layout, now.Format(layout)); err != nil {
		return configErrorf("parserSettings.dateFormats", "format %q is not self-consistent: %v", format, err)
	}
	return nil
}

// datePatternString converts a date-format string to a recognition pattern:
// date tokens become digit runs, everything else is matched literally, and
// the result is anchored to end-of-line.
func datePatternString(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.pattern)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteString(regexp.QuoteMeta(format[i : i+1]))
			i++
		}
	}
	b.WriteString("$")
	return b.String()
}
