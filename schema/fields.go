package schema

import "strings"

// FieldName identifies one of the mandatory placeholder fields that every
// block format template must define. The vocabulary is closed; templates may
// reference additional custom fields, but those carry no semantics beyond
// their capture group.
type FieldName string

const (
	FieldPaymentMethodMarker  FieldName = "PAYMENT_METHOD_MARKER"
	FieldPaymentMethodPostfix FieldName = "PAYMENT_METHOD_POSTFIX"
	FieldAmount               FieldName = "AMOUNT"
	FieldAmountTitleSeparator FieldName = "AMOUNT_TITLE_SEPARATOR"
	FieldTitle                FieldName = "TITLE"
	FieldDetails              FieldName = "DETAILS"
	FieldMoreDetails          FieldName = "MORE_DETAILS"
)

// MandatoryFields lists the closed vocabulary in canonical order.
var MandatoryFields = []FieldName{
	FieldPaymentMethodMarker,
	FieldPaymentMethodPostfix,
	FieldAmount,
	FieldAmountTitleSeparator,
	FieldTitle,
	FieldDetails,
	FieldMoreDetails,
}

// GroupName returns the capture group name used for this field in the
// composite pattern.
func (f FieldName) GroupName() string { return string(f) }

// CanonicalFieldName upper-cases a placeholder or field key so that lookups
// against the vocabulary are case-insensitive.
func CanonicalFieldName(name string) string { return strings.ToUpper(name) }

// IsMandatoryField reports whether name (in any case) is a member of the
// mandatory vocabulary.
func IsMandatoryField(name string) bool {
	canon := CanonicalFieldName(name)
	for _, f := range MandatoryFields {
		if string(f) == canon {
			return true
		}
	}
	return false
}

// mandatoryFieldNames returns the vocabulary as plain strings, for error
// messages listing the allowed set.
func mandatoryFieldNames() []string {
	names := make([]string, len(MandatoryFields))
	for i, f := range MandatoryFields {
		names[i] = string(f)
	}
	return names
}
