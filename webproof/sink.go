package webproof

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SinkMode selects where WriteArtifacts sends the proof round.
type SinkMode string

const (
	SinkFile   SinkMode = "file"
	SinkStdout SinkMode = "stdout"
	SinkReturn SinkMode = "return"
)

// SinkOptions configures one artifact emission.
type SinkOptions struct {
	Proof               *Proof
	Verification        *VerificationResult
	Mode                SinkMode
	OutDir              string    // required in file mode
	Prefix              string    // file name prefix, "webproof" if empty
	Pretty              bool      // 2-space indentation instead of compact
	IncludeVerification bool      // embed/write the verification at all
	Out                 io.Writer // stdout-mode destination, os.Stdout if nil
}

// SinkResult reports what WriteArtifacts produced: file paths in file mode,
// the JSON text in return mode.
type SinkResult struct {
	ProofPath        string
	VerificationPath string
	JSON             string
}

// artifactDoc is the combined shape emitted in stdout and return modes.
type artifactDoc struct {
	Proof        *Proof              `json:"proof"`
	Verification *VerificationResult `json:"verification,omitempty"`
}

// WriteArtifacts persists or emits a proof round. File mode writes two
// sibling JSON files named <prefix>-<ts>.json and
// <prefix>-verification-<ts>.json, creating the output directory as needed;
// stdout mode writes the combined {proof, verification?} document as one JSON
// line; return mode hands the identical JSON text back. Concurrent writes
// with the same prefix within one timestamp granule can collide on the file
// name; that edge is documented, not mitigated.
func WriteArtifacts(opts SinkOptions) (*SinkResult, error) {
	if opts.Proof == nil {
		return nil, NewSinkError("no proof to write", nil)
	}

	verification := opts.Verification
	if !opts.IncludeVerification {
		verification = nil
	}

	switch opts.Mode {
	case SinkFile:
		return writeArtifactFiles(opts, verification)
	case SinkStdout, SinkReturn:
		text, err := marshalArtifact(artifactDoc{Proof: opts.Proof, Verification: verification}, opts.Pretty)
		if err != nil {
			return nil, err
		}
		if opts.Mode == SinkReturn {
			return &SinkResult{JSON: text}, nil
		}
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, text+"\n"); err != nil {
			return nil, NewSinkError("could not write artifact to output", err)
		}
		return &SinkResult{}, nil
	default:
		return nil, NewSinkError("unknown sink mode: "+string(opts.Mode), nil)
	}
}

func writeArtifactFiles(opts SinkOptions, verification *VerificationResult) (*SinkResult, error) {
	if opts.OutDir == "" {
		return nil, NewSinkError("file mode requires an output directory", nil)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, NewSinkError("could not create output directory", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "webproof"
	}
	ts := artifactTimestamp(time.Now().UTC())

	result := &SinkResult{}

	proofText, err := marshalArtifact(opts.Proof, opts.Pretty)
	if err != nil {
		return nil, err
	}
	result.ProofPath = filepath.Join(opts.OutDir, prefix+"-"+ts+".json")
	if err := os.WriteFile(result.ProofPath, []byte(proofText), 0o644); err != nil {
		return nil, NewSinkError("could not write proof artifact", err)
	}

	if verification != nil {
		verificationText, err := marshalArtifact(verification, opts.Pretty)
		if err != nil {
			return nil, err
		}
		result.VerificationPath = filepath.Join(opts.OutDir, prefix+"-verification-"+ts+".json")
		if err := os.WriteFile(result.VerificationPath, []byte(verificationText), 0o644); err != nil {
			return nil, NewSinkError("could not write verification artifact", err)
		}
	}

	return result, nil
}

func marshalArtifact(v interface{}, pretty bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", NewSinkError("could not encode artifact", err)
	}
	return string(data), nil
}

// artifactTimestamp renders an ISO-8601 timestamp with ':' and '.' replaced
// so the result is filesystem-safe on every platform.
func artifactTimestamp(t time.Time) string {
	iso := t.Format("2006-01-02T15:04:05.000Z")
	iso = strings.ReplaceAll(iso, ":", "-")
	return strings.ReplaceAll(iso, ".", "-")
}
