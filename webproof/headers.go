package webproof

import (
	"strings"
)

// Header is an ordered name/value pair for additional request headers. A map
// would lose the caller's insertion order, which the prover-visible header
// list must preserve.
type Header struct {
	Name  string
	Value string
}

// HeaderOptions are the named fields BuildHeaders assembles into an ordered
// header list.
type HeaderOptions struct {
	Accept            string   // defaults to "application/json"
	AuthToken         string   // emitted as Authorization with a Bearer prefix
	Cookies           string   // emitted verbatim as a single Cookie header
	AdditionalHeaders []Header // sanitized individually, emitted in input order
}

// SanitizeHeader normalizes a raw "Name: value" string. It returns the
// normalized form and true, or "" and false when the input is malformed or
// disallowed. Rejected forms: empty input, missing colon, empty name or value
// after trimming, HTTP/2 pseudo-headers (":authority" etc.), and
// accept-encoding in any casing, since response-compression negotiation
// breaks deterministic transcript capture.
func SanitizeHeader(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, ":") {
		return "", false
	}
	colonIdx := strings.Index(trimmed, ":")
	if colonIdx == -1 {
		return "", false
	}
	name := strings.TrimSpace(trimmed[:colonIdx])
	value := strings.TrimSpace(trimmed[colonIdx+1:])
	if name == "" || value == "" {
		return "", false
	}
	if strings.EqualFold(name, "accept-encoding") {
		return "", false
	}
	return name + ": " + value, true
}

// BuildHeaders produces a deterministic ordered header list: Accept,
// Authorization, Cookie, then additional headers in input order. Additional
// headers that fail sanitization are dropped from the emitted list but
// returned raw in the second value so callers can surface a warning; a single
// bad header never aborts the whole request.
func BuildHeaders(opts HeaderOptions) ([]string, []string) {
	headers, _, dropped := buildClassifiedHeaders(opts)
	return headers, dropped
}

// emittedHeader pairs a built header line with the name it was emitted under,
// preserving original casing for redaction descriptors.
type emittedHeader struct {
	name string
	line string
}

func buildClassifiedHeaders(opts HeaderOptions) ([]string, []emittedHeader, []string) {
	emitted := make([]emittedHeader, 0, 3+len(opts.AdditionalHeaders))

	accept := opts.Accept
	if accept == "" {
		accept = "application/json"
	}
	emitted = append(emitted, emittedHeader{name: "Accept", line: "Accept: " + accept})

	if opts.AuthToken != "" {
		token := opts.AuthToken
		if !strings.HasPrefix(token, "Bearer ") {
			token = "Bearer " + token
		}
		emitted = append(emitted, emittedHeader{name: "Authorization", line: "Authorization: " + token})
	}

	if opts.Cookies != "" {
		// Literal cookie string, no re-escaping.
		emitted = append(emitted, emittedHeader{name: "Cookie", line: "Cookie: " + opts.Cookies})
	}

	var dropped []string
	for _, h := range opts.AdditionalHeaders {
		raw := h.Name + ": " + h.Value
		sanitized, ok := SanitizeHeader(raw)
		if !ok {
			dropped = append(dropped, raw)
			continue
		}
		name := sanitized[:strings.Index(sanitized, ":")]
		emitted = append(emitted, emittedHeader{name: name, line: sanitized})
	}

	lines := make([]string, len(emitted))
	for i, e := range emitted {
		lines[i] = e.line
	}
	return lines, emitted, dropped
}
