package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vlayer-xyz/vouch-skills/webproof"
)

// readProofFile loads a stored proof artifact. Both bare proof files (from
// file mode) and combined {proof, verification} documents (from stdout mode)
// are accepted.
func readProofFile(path string) (*webproof.Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read proof file: %w", err)
	}

	var combined struct {
		Proof *webproof.Proof `json:"proof"`
	}
	if err := json.Unmarshal(data, &combined); err == nil && combined.Proof != nil {
		return combined.Proof, nil
	}

	var proof webproof.Proof
	if err := json.Unmarshal(data, &proof); err != nil {
		return nil, fmt.Errorf("could not parse proof file: %w", err)
	}
	if proof.Data == "" {
		return nil, fmt.Errorf("file %s does not contain a proof", path)
	}
	return &proof, nil
}

func verificationJSON(v *webproof.VerificationResult, pretty bool) (string, error) {
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
		return "", fmt.Errorf("could not encode verification result: %w", err)
	}
	return string(data), nil
}
