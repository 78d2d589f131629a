package schema

import (
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

// NoPostfix is the sentinel postfix under which a payment method is
// registered when it is exempt from the mandatory-postfix rule. Entries
// written without any postfix resolve through this key.
const NoPostfix = "<no postfix>"

type registryKey struct {
	prefix  string
	postfix string
}

// Registry resolves (prefix marker, postfix) pairs to payment methods. It is
// built once at compile time and never mutated afterwards.
type Registry struct {
	methods map[registryKey]*PaymentMethod
}

// Lookup resolves a marker and raw postfix text to a payment method, or nil
// when the pair is unknown. The postfix is sanitized to its
// alphanumeric-and-space substring first; an empty postfix resolves through
// the NoPostfix sentinel.
func (r *Registry) Lookup(marker, postfix string) *PaymentMethod {
	p := SanitizePostfix(postfix)
	if p == "" {
		p = NoPostfix
	}
	return r.methods[registryKey{prefix: marker, postfix: p}]
}

// Len returns the number of registered (marker, postfix) keys.
func (r *Registry) Len() int { return len(r.methods) }

// SanitizePostfix reduces a postfix to its alphanumeric-and-space substring,
// the canonical form used for registry keys.
func SanitizePostfix(postfix string) string {
	var b strings.Builder
	for _, r := range postfix {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// buildRegistry validates payment-method configuration and assembles the
// lookup table. Duplicate (prefix, postfix) keys across methods are fatal.
func buildRegistry(doc *Document) (*Registry, error) {
	settings := doc.ParserSettings

	mandatoryPostfix := make(map[string]bool, len(settings.MandatoryPostfixForPaymentMethods))
	for _, name := range settings.MandatoryPostfixForPaymentMethods {
		if _, ok := doc.PaymentMethods[name]; !ok {
			cerr := configErrorf("parserSettings.mandatoryPostfixForPaymentMethods",
				"references unknown payment method %q", name)
			cerr.Allowed = sortedKeys(doc.PaymentMethods)
			return nil, cerr
		}
		mandatoryPostfix[name] = true
	}

	reg := &Registry{methods: make(map[registryKey]*PaymentMethod)}

	// Deterministic order keeps duplicate-key errors stable across runs.
	for _, name := range sortedKeys(doc.PaymentMethods) {
		pm := doc.PaymentMethods[name]
		if pm.PrefixSymbol == "" {
			return nil, configErrorf("paymentMethods."+name, "prefixSymbol must not be empty")
		}

		for _, postfix := range pm.PostfixSymbols {
			if !isAlnumSpace(postfix) {
				return nil, configErrorf("paymentMethods."+name,
					"postfix symbol %q may only contain alphanumeric characters and spaces", postfix)
			}
			if err := reg.register(pm, SanitizePostfix(postfix)); err != nil {
				return nil, err
			}
		}

		if !mandatoryPostfix[name] {
			if err := reg.register(pm, NoPostfix); err != nil {
				return nil, err
			}
		}
	}

	return reg, nil
}

func (r *Registry) register(pm *PaymentMethod, postfix string) error {
	key := registryKey{prefix: pm.PrefixSymbol, postfix: postfix}
	if existing, ok := r.methods[key]; ok {
		return configErrorf("paymentMethods",
			"methods %q and %q share the same (prefix %q, postfix %q) key",
			existing.Name, pm.Name, key.prefix, key.postfix)
	}
	r.methods[key] = pm
	return nil
}

func isAlnumSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
