package schema

import (
	"fmt"
	"strings"
)

// ConfigError describes a fatal problem in the schema document. Any
// ConfigError aborts the run before a single ledger line is parsed; there is
// no partial or degraded load.
type ConfigError struct {
	// Field names the offending field, key or format string.
	Field string
	// Message describes what is wrong with it.
	Message string
	// Allowed optionally lists the set of acceptable values.
	Allowed []string
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("schema: %s: %s", e.Field, e.Message)
	if len(e.Allowed) > 0 {
		msg += fmt.Sprintf(" (allowed: %s)", strings.Join(e.Allowed, ", "))
	}
	return msg
}

func configErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
