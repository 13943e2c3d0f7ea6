package webproof

// ProofRequest describes one HTTP exchange to be notarized by the remote
// prover. Headers are pre-sanitized "Name: value" strings; build them with
// BuildHeaders or BuildHeadersWithRedaction.
type ProofRequest struct {
	URL         string                `json:"url"`
	Method      string                `json:"method"`
	Headers     []string              `json:"headers"`
	MaxRecvData int                   `json:"maxRecvData,omitempty"`
	Redaction   []RedactionDescriptor `json:"redaction,omitempty"`
}

// RedactionDescriptor marks request-side headers whose values must be hidden
// in the resulting proof while keeping the proof verifiable.
type RedactionDescriptor struct {
	Request RequestRedaction `json:"request"`
}

// RequestRedaction lists the header names to redact. Names must correspond to
// headers actually present in the request.
type RequestRedaction struct {
	Headers []string `json:"headers"`
}

// Proof is the notarized transcript returned by the prover. It is opaque to
// this client: never parsed, only stored or handed to VerifyProof.
type Proof struct {
	Data    string    `json:"data"`
	Version string    `json:"version"`
	Meta    ProofMeta `json:"meta"`
}

// ProofMeta carries prover metadata alongside the transcript.
type ProofMeta struct {
	NotaryURL string `json:"notaryUrl"`
}

// HeaderPair is a parsed name/value header as reported by the verifier.
type HeaderPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParsedHTTPRecord is the verifier's reconstruction of one side of the
// notarized exchange.
type ParsedHTTPRecord struct {
	Method      string       `json:"method,omitempty"`
	URL         string       `json:"url,omitempty"`
	HTTPVersion string       `json:"httpVersion,omitempty"`
	Headers     []HeaderPair `json:"headers,omitempty"`
	Body        string       `json:"body,omitempty"`
	RawHex      string       `json:"rawHex,omitempty"`
	ParseOK     bool         `json:"parseOk"`
}

// VerificationResult is the verifier's verdict for one proof. Produced once
// per verify call and read-only afterwards.
type VerificationResult struct {
	Success              bool              `json:"success"`
	ServerDomain         string            `json:"serverDomain"`
	NotaryKeyFingerprint string            `json:"notaryKeyFingerprint"`
	Request              *ParsedHTTPRecord `json:"request,omitempty"`
	Response             *ParsedHTTPRecord `json:"response,omitempty"`
	Error                string            `json:"error,omitempty"`
}
