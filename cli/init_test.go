package cli

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"expensetally/schema"
)

func TestSampleConfigCompiles(t *testing.T) {
	doc, err := schema.ParseJSON([]byte(sampleConfig))
	assert.NoError(t, err)

	compiled, err := schema.Compile(doc)
	assert.NoError(t, err)

	// The documented ledger shape must actually match.
	match := compiled.Pattern.FindStringSubmatch("- 10 | Coffee")
	assert.True(t, match != nil)
	assert.Equal(t, "-", compiled.Group(match, schema.FieldPaymentMethodMarker))
	assert.Equal(t, "10", compiled.Group(match, schema.FieldAmount))

	date, ok := compiled.IsDateLine("2021-08-01")
	assert.True(t, ok)
	assert.Equal(t, "2021-08-01", date)
}
