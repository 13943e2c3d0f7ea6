package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vlayer-xyz/vouch-skills/jsonquery"
	"github.com/vlayer-xyz/vouch-skills/shared"
	"github.com/vlayer-xyz/vouch-skills/webproof"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var flagURL *cli.StringFlag = &cli.StringFlag{
	Name:     "url",
	Required: true,
	Usage:    "Target URL to notarize",
}
var flagMethod *cli.StringFlag = &cli.StringFlag{
	Name:  "method",
	Value: "GET",
	Usage: "HTTP method for the notarized request",
}
var flagHeader *cli.StringSliceFlag = &cli.StringSliceFlag{
	Name:  "header",
	Usage: "Additional request header as 'Name: value'; repeatable. Malformed entries are dropped with a warning",
}
var flagAuthToken *cli.StringFlag = &cli.StringFlag{
	Name:  "auth-token",
	Usage: "Token for the notarized request's Authorization header ('Bearer ' is prefixed automatically)",
}
var flagCookie *cli.StringFlag = &cli.StringFlag{
	Name:  "cookie",
	Usage: "Literal Cookie header value for the notarized request",
}
var flagAccept *cli.StringFlag = &cli.StringFlag{
	Name:  "accept",
	Usage: "Accept header value (default application/json)",
}
var flagSensitive *cli.StringSliceFlag = &cli.StringSliceFlag{
	Name:  "sensitive",
	Usage: "Extra header name to redact; repeatable",
}
var flagNoRedact *cli.StringSliceFlag = &cli.StringSliceFlag{
	Name:  "no-redact",
	Usage: "Header name to keep out of redaction even if sensitive; repeatable",
}
var flagMaxRecvData *cli.IntFlag = &cli.IntFlag{
	Name:  "max-recv-data",
	Usage: "Cap on received bytes in the notarized exchange (0 = NOTARY_MAX_RECV_DATA env or provider default)",
}
var flagStdout *cli.BoolFlag = &cli.BoolFlag{
	Name:    "stdout",
	Aliases: []string{"json"},
	Usage:   "Write the {proof, verification} document to stdout instead of files",
}
var flagOutDir *cli.StringFlag = &cli.StringFlag{
	Name:  "out-dir",
	Value: "./proofs",
	Usage: "Directory for artifact files in file mode",
}
var flagPrefix *cli.StringFlag = &cli.StringFlag{
	Name:  "prefix",
	Value: "webproof",
	Usage: "File name prefix for artifacts",
}
var flagPretty *cli.BoolFlag = &cli.BoolFlag{
	Name:  "pretty",
	Usage: "Pretty-print artifact JSON with 2-space indentation",
}
var flagQuiet *cli.BoolFlag = &cli.BoolFlag{
	Name:    "quiet",
	Aliases: []string{"q"},
	Usage:   "Suppress progress output",
}
var flagLogFile *cli.StringFlag = &cli.StringFlag{
	Name:  "log-file",
	Usage: "Write logs to a rotating file instead of the console",
}
var flagSkipVerify *cli.BoolFlag = &cli.BoolFlag{
	Name:  "skip-verify",
	Usage: "Generate the proof without calling the verify endpoint",
}
var flagProofFile *cli.StringFlag = &cli.StringFlag{
	Name:     "proof",
	Required: true,
	Usage:    "Path to a stored proof JSON artifact",
}
var flagExtract *cli.StringFlag = &cli.StringFlag{
	Name:  "extract",
	Usage: "JSONPath to pull a field out of the verification result, e.g. '$.response.body'",
}
var flagBatchInput *cli.StringFlag = &cli.StringFlag{
	Name:     "input",
	Required: true,
	Usage:    "Path to a JSON array of request descriptors",
}

func main() {
	app := &cli.App{
		Name:  "vouch",
		Usage: "Generate and verify web proofs against a remote notary service",
		Flags: []cli.Flag{
			flagQuiet,
			flagLogFile,
		},
		Commands: []*cli.Command{
			{
				Name:  "prove",
				Usage: "Notarize one HTTP exchange and persist the proof",
				Flags: []cli.Flag{
					flagURL, flagMethod, flagHeader, flagAuthToken, flagCookie,
					flagAccept, flagSensitive, flagNoRedact, flagMaxRecvData,
					flagStdout, flagOutDir, flagPrefix, flagPretty, flagSkipVerify,
				},
				Action: runProve,
			},
			{
				Name:  "verify",
				Usage: "Verify a stored proof against the notary verify endpoint",
				Flags: []cli.Flag{
					flagProofFile, flagExtract, flagPretty,
				},
				Action: runVerify,
			},
			{
				Name:  "prove-batch",
				Usage: "Notarize every descriptor in a JSON input file, reporting settled per-entry outcomes",
				Flags: []cli.Flag{
					flagBatchInput, flagOutDir, flagPrefix, flagPretty, flagStdout,
				},
				Action: runProveBatch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newEnv builds the logger and client from flags plus process environment.
// Credential and endpoint lookups live here, never inside the library.
func newEnv(cCtx *cli.Context) (*shared.Logger, *webproof.Client, error) {
	// A .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	logger, err := shared.NewLogger(shared.LoggerConfig{
		ServiceName: "vouch-cli",
		Development: shared.GetEnvOrDefault("DEVELOPMENT", "false") == "true",
		Quiet:       cCtx.Bool(flagQuiet.Name),
		LogFile:     cCtx.String(flagLogFile.Name),
	})
	if err != nil {
		return nil, nil, err
	}

	client, err := webproof.NewClient(webproof.ClientConfig{
		ClientID:  os.Getenv("NOTARY_CLIENT_ID"),
		Token:     os.Getenv("NOTARY_TOKEN"),
		ProveURL:  shared.GetEnvOrDefault("NOTARY_PROVE_URL", ""),
		VerifyURL: shared.GetEnvOrDefault("NOTARY_VERIFY_URL", ""),
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, client, nil
}

func runProve(cCtx *cli.Context) error {
	logger, client, err := newEnv(cCtx)
	if err != nil {
		return err
	}
	defer logger.Close()

	opts := webproof.RedactionHeaderOptions{
		HeaderOptions: webproof.HeaderOptions{
			Accept:    cCtx.String(flagAccept.Name),
			AuthToken: cCtx.String(flagAuthToken.Name),
			Cookies:   cCtx.String(flagCookie.Name),
		},
		SensitiveHeaders:     cCtx.StringSlice(flagSensitive.Name),
		ExcludeFromRedaction: cCtx.StringSlice(flagNoRedact.Name),
	}
	for _, raw := range cCtx.StringSlice(flagHeader.Name) {
		name, value, found := strings.Cut(raw, ":")
		if !found {
			value = "" // fails sanitization below, reported as dropped
		}
		opts.AdditionalHeaders = append(opts.AdditionalHeaders, webproof.Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}

	headers, redaction, dropped := webproof.BuildHeadersWithRedaction(opts)
	for _, raw := range dropped {
		logger.Warn("dropping malformed header", zap.String("header", raw))
	}

	maxRecvData := cCtx.Int(flagMaxRecvData.Name)
	if maxRecvData == 0 {
		maxRecvData = shared.GetEnvIntOrDefault("NOTARY_MAX_RECV_DATA", 0)
	}

	req := webproof.ProofRequest{
		URL:         cCtx.String(flagURL.Name),
		Method:      cCtx.String(flagMethod.Name),
		Headers:     headers,
		MaxRecvData: maxRecvData,
		Redaction:   redaction,
	}

	proof, err := client.GenerateProof(cCtx.Context, req)
	if err != nil {
		return err
	}

	var verification *webproof.VerificationResult
	if !cCtx.Bool(flagSkipVerify.Name) {
		verification, err = client.VerifyProof(cCtx.Context, proof)
		if err != nil {
			// The proof already exists; persist it before reporting the
			// verify failure.
			if _, sinkErr := writeRound(cCtx, proof, nil); sinkErr != nil {
				logger.Error("could not persist proof after verify failure", zap.Error(sinkErr))
			}
			return err
		}
	}

	result, err := writeRound(cCtx, proof, verification)
	if err != nil {
		return err
	}
	if !cCtx.Bool(flagQuiet.Name) && result.ProofPath != "" {
		fmt.Printf("proof written to %s\n", result.ProofPath)
		if result.VerificationPath != "" {
			fmt.Printf("verification written to %s\n", result.VerificationPath)
		}
	}
	return nil
}

func writeRound(cCtx *cli.Context, proof *webproof.Proof, verification *webproof.VerificationResult) (*webproof.SinkResult, error) {
	mode := webproof.SinkFile
	if cCtx.Bool(flagStdout.Name) {
		mode = webproof.SinkStdout
	}
	return webproof.WriteArtifacts(webproof.SinkOptions{
		Proof:               proof,
		Verification:        verification,
		Mode:                mode,
		OutDir:              cCtx.String(flagOutDir.Name),
		Prefix:              cCtx.String(flagPrefix.Name),
		Pretty:              cCtx.Bool(flagPretty.Name),
		IncludeVerification: verification != nil,
	})
}

func runVerify(cCtx *cli.Context) error {
	logger, client, err := newEnv(cCtx)
	if err != nil {
		return err
	}
	defer logger.Close()

	proof, err := readProofFile(cCtx.String(flagProofFile.Name))
	if err != nil {
		return err
	}

	verification, err := client.VerifyProof(cCtx.Context, proof)
	if err != nil {
		return err
	}

	text, err := verificationJSON(verification, cCtx.Bool(flagPretty.Name))
	if err != nil {
		return err
	}

	if path := cCtx.String(flagExtract.Name); path != "" {
		return printExtracted([]byte(text), path)
	}
	fmt.Println(text)
	if !verification.Success {
		return fmt.Errorf("verification failed: %s", verification.Error)
	}
	return nil
}

func printExtracted(doc []byte, path string) error {
	values, ok := jsonquery.Query(doc, path)
	if !ok {
		return fmt.Errorf("path %q matched nothing in the verification result", path)
	}
	for _, v := range values {
		switch v.Kind() {
		case jsonquery.String:
			s, _ := v.Str()
			fmt.Println(s)
		case jsonquery.Number:
			n, _ := v.Num()
			fmt.Println(n)
		case jsonquery.Bool:
			b, _ := v.Boolean()
			fmt.Println(b)
		case jsonquery.Null:
			fmt.Println("null")
		default:
			fmt.Printf("<%s of %d elements>\n", v.Kind(), v.Len())
		}
	}
	return nil
}

func runProveBatch(cCtx *cli.Context) error {
	logger, client, err := newEnv(cCtx)
	if err != nil {
		return err
	}
	defer logger.Close()

	data, err := os.ReadFile(cCtx.String(flagBatchInput.Name))
	if err != nil {
		return fmt.Errorf("could not read batch input: %w", err)
	}
	reqs, err := webproof.ParseRequestBatchJSON(data)
	if err != nil {
		return err
	}

	results := client.GenerateProofBatch(cCtx.Context, reqs)

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
			logger.Error("batch entry failed",
				zap.Int("index", r.Index),
				zap.String("url", reqs[r.Index].URL),
				zap.Error(r.Err))
			continue
		}
		prefix := fmt.Sprintf("%s-%d", cCtx.String(flagPrefix.Name), r.Index)
		mode := webproof.SinkFile
		if cCtx.Bool(flagStdout.Name) {
			mode = webproof.SinkStdout
		}
		sunk, err := webproof.WriteArtifacts(webproof.SinkOptions{
			Proof:  r.Proof,
			Mode:   mode,
			OutDir: cCtx.String(flagOutDir.Name),
			Prefix: prefix,
			Pretty: cCtx.Bool(flagPretty.Name),
		})
		if err != nil {
			return err
		}
		if !cCtx.Bool(flagQuiet.Name) && sunk.ProofPath != "" {
			fmt.Printf("entry %d: proof written to %s\n", r.Index, sunk.ProofPath)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d batch entries failed", failures, len(results))
	}
	return nil
}
