// Package webproof is a thin client for a remote web-proof notary service:
// it shapes header lists and redaction metadata, calls the prove and verify
// endpoints, and persists the resulting JSON artifacts. All notarization,
// TLS and cryptographic work happens on the remote side.
package webproof

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vlayer-xyz/vouch-skills/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hosted notary endpoints used when the configuration leaves them empty.
const (
	DefaultProveURL  = "https://notary.vlayer.xyz/api/prove"
	DefaultVerifyURL = "https://notary.vlayer.xyz/api/verify"
)

// ClientConfig contains all configuration options for the proof client.
// Credentials are explicit; the library never reads the process environment
// (keep env lookups at the CLI boundary).
type ClientConfig struct {
	ClientID   string         // client identifier, sent as x-client-id
	Token      string         // secret bearer token
	ProveURL   string         // prove endpoint, DefaultProveURL if empty
	VerifyURL  string         // verify endpoint, DefaultVerifyURL if empty
	HTTPClient *http.Client   // optional transport override
	Logger     *shared.Logger // optional logger with request context
	RequestID  string         // request ID for tracking across the system
}

// Client issues the two remote calls against the notary service. The
// credential pair is immutable after construction and safe for concurrent
// reads; the client carries no other mutable state, so a single instance may
// serve many concurrent proof rounds.
type Client struct {
	clientID   string
	token      string
	proveURL   string
	verifyURL  string
	httpClient *http.Client
	requestID  string
	log        *zap.Logger
}

// NewClient validates the credential pair and returns a ready client. A
// missing client ID or token fails fast with a ConfigurationError.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, NewConfigurationError("ClientID", "client identifier is required")
	}
	if cfg.Token == "" {
		return nil, NewConfigurationError("Token", "secret token is required")
	}

	proveURL := cfg.ProveURL
	if proveURL == "" {
		proveURL = DefaultProveURL
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = shared.NewNopLogger()
	}
	requestID := cfg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c := &Client{
		clientID:   cfg.ClientID,
		token:      strings.TrimPrefix(cfg.Token, "Bearer "),
		proveURL:   proveURL,
		verifyURL:  verifyURL,
		httpClient: httpClient,
		requestID:  requestID,
		log:        logger.WithRequestID(requestID),
	}
	c.warnIfTokenExpired()
	return c, nil
}

// warnIfTokenExpired decodes JWT-shaped tokens without verification and warns
// when the expiry has passed. Token refresh is out of scope, so this never
// fails construction; non-JWT tokens are ignored.
func (c *Client) warnIfTokenExpired() {
	parsed, _, err := jwt.NewParser().ParseUnverified(c.token, jwt.MapClaims{})
	if err != nil {
		return
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		c.log.Warn("bearer token appears to be an expired JWT",
			zap.Time("expired_at", exp.Time))
	}
}

// GenerateProof posts the request descriptor to the prove endpoint and
// returns the notarized proof. No retry, timeout or circuit breaking is
// applied; cancellation is driven by ctx.
func (c *Client) GenerateProof(ctx context.Context, req ProofRequest) (*Proof, error) {
	if req.Headers == nil {
		// The generate endpoint contract keys "headers" to an array; a nil
		// slice would marshal as JSON null.
		req.Headers = []string{}
	}

	c.log.Info("requesting proof generation",
		zap.String("target_url", req.URL),
		zap.String("method", req.Method),
		zap.Int("header_count", len(req.Headers)),
		zap.Int("redaction_descriptors", len(req.Redaction)))

	var proof Proof
	if err := c.postJSON(ctx, "prove", c.proveURL, req, &proof); err != nil {
		return nil, err
	}

	c.log.Info("proof generated",
		zap.String("version", proof.Version),
		zap.String("notary_url", proof.Meta.NotaryURL),
		zap.Int("proof_bytes", len(proof.Data)/2))
	return &proof, nil
}

// VerifyProof posts the proof object to the verify endpoint and returns the
// structured verdict. The proof itself is never inspected locally.
func (c *Client) VerifyProof(ctx context.Context, proof *Proof) (*VerificationResult, error) {
	var result VerificationResult
	if err := c.postJSON(ctx, "verify", c.verifyURL, proof, &result); err != nil {
		return nil, err
	}

	c.log.Info("proof verified",
		zap.Bool("success", result.Success),
		zap.String("server_domain", result.ServerDomain),
		zap.String("notary_key_fingerprint", result.NotaryKeyFingerprint))
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return NewValidationError("could not encode "+endpoint+" payload", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("notary endpoint rejected request",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return NewRequestError(endpoint, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return NewValidationError("could not parse "+endpoint+" response", err)
	}
	return nil
}
