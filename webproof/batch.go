package webproof

import (
	"context"
	"sync"
)

// BatchResult is the settled outcome for one entry of a batch generation:
// either Proof or Err is set, never both. Index matches the position of the
// descriptor in the input slice.
type BatchResult struct {
	Index int
	Proof *Proof
	Err   error
}

// GenerateProofBatch fans out one generate call per descriptor and collects
// every outcome, success or failure, into a fixed-size slice in input order.
// The batch as a whole never fails: a rejected entry settles with Err while
// the rest proceed. There is no ordering guarantee between the remote calls
// of different entries.
func (c *Client) GenerateProofBatch(ctx context.Context, reqs []ProofRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(idx int, r ProofRequest) {
			defer wg.Done()
			proof, err := c.GenerateProof(ctx, r)
			results[idx] = BatchResult{Index: idx, Proof: proof, Err: err}
		}(i, req)
	}
	wg.Wait()

	return results
}
