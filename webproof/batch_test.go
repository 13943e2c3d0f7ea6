package webproof

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateProofBatchSettlesEveryEntryInOrder(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad batch entry body: %v", err)
		}
		// Entries targeting /fail are rejected so the batch settles mixed.
		if strings.HasSuffix(req.URL, "/fail") {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream unavailable"))
			return
		}
		fmt.Fprintf(w, `{"data":"ab","version":"0.1.0","meta":{"notaryUrl":%q}}`, req.URL)
	}))
	defer stub.Close()

	client, err := NewClient(ClientConfig{ClientID: "c", Token: "t", ProveURL: stub.URL})
	if err != nil {
		t.Fatal(err)
	}

	reqs := []ProofRequest{
		{URL: "https://a.test/ok", Method: "GET"},
		{URL: "https://b.test/fail", Method: "GET"},
		{URL: "https://c.test/ok", Method: "GET"},
	}
	results := client.GenerateProofBatch(context.Background(), reqs)

	if len(results) != len(reqs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d", i, r.Index)
		}
	}
	if results[0].Err != nil || results[0].Proof == nil {
		t.Errorf("entry 0 should succeed: %+v", results[0])
	}
	if results[1].Err == nil || results[1].Proof != nil {
		t.Errorf("entry 1 should fail: %+v", results[1])
	}
	if !strings.Contains(results[1].Err.Error(), "502") {
		t.Errorf("entry 1 error %q missing status", results[1].Err)
	}
	if results[2].Err != nil || results[2].Proof == nil {
		t.Errorf("entry 2 should succeed: %+v", results[2])
	}
	// Results stay correlated to their own descriptor.
	if results[2].Proof.Meta.NotaryURL != "https://c.test/ok" {
		t.Errorf("entry 2 got proof for %q", results[2].Proof.Meta.NotaryURL)
	}
}

func TestGenerateProofBatchEmptyInput(t *testing.T) {
	client, err := NewClient(ClientConfig{ClientID: "c", Token: "t"})
	if err != nil {
		t.Fatal(err)
	}
	results := client.GenerateProofBatch(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("results = %v, want empty", results)
	}
}
