package webproof

import (
	"strings"
)

// Header names whose values are credential-like and redacted by default.
var defaultSensitiveHeaders = []string{"authorization", "cookie", "x-api-key"}

// RedactionHeaderOptions extends HeaderOptions with the sensitivity
// classification used to build request-side redaction descriptors.
type RedactionHeaderOptions struct {
	HeaderOptions

	// SensitiveHeaders extends the default sensitive set
	// (authorization, cookie, x-api-key). Case-insensitive.
	SensitiveHeaders []string

	// ExcludeFromRedaction removes names from redaction even when they match
	// the default or caller-supplied sensitive set. Exclusion wins.
	ExcludeFromRedaction []string
}

// BuildHeadersWithRedaction assembles the same ordered header list as
// BuildHeaders and additionally classifies each emitted header against the
// sensitive set. Sensitive header names are collected in emission order,
// original casing preserved, and wrapped into a single request-side
// redaction descriptor. The descriptor list is empty when nothing matched.
// The third return value lists raw additional headers the sanitizer dropped.
func BuildHeadersWithRedaction(opts RedactionHeaderOptions) ([]string, []RedactionDescriptor, []string) {
	lines, emitted, dropped := buildClassifiedHeaders(opts.HeaderOptions)

	sensitive := make(map[string]bool, len(defaultSensitiveHeaders)+len(opts.SensitiveHeaders))
	for _, name := range defaultSensitiveHeaders {
		sensitive[name] = true
	}
	for _, name := range opts.SensitiveHeaders {
		sensitive[strings.ToLower(name)] = true
	}
	excluded := make(map[string]bool, len(opts.ExcludeFromRedaction))
	for _, name := range opts.ExcludeFromRedaction {
		excluded[strings.ToLower(name)] = true
	}

	var redactNames []string
	for _, e := range emitted {
		key := strings.ToLower(e.name)
		if excluded[key] {
			continue
		}
		if sensitive[key] {
			redactNames = append(redactNames, e.name)
		}
	}

	var descriptors []RedactionDescriptor
	if len(redactNames) > 0 {
		descriptors = []RedactionDescriptor{
			{Request: RequestRedaction{Headers: redactNames}},
		}
	}

	return lines, descriptors, dropped
}
