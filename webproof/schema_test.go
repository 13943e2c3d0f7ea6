package webproof

import (
	"strings"
	"testing"
)

func TestValidateRequestJSONAcceptsWellFormedDescriptor(t *testing.T) {
	doc := []byte(`{
		"url": "https://api.example.com/data",
		"method": "GET",
		"headers": ["Accept: application/json"],
		"maxRecvData": 16384,
		"redaction": [{"request": {"headers": ["Authorization"]}}]
	}`)
	if err := ValidateRequestJSON(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, err := ParseRequestJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	if req.URL != "https://api.example.com/data" || req.MaxRecvData != 16384 {
		t.Errorf("parsed descriptor = %+v", req)
	}
	if len(req.Redaction) != 1 || req.Redaction[0].Request.Headers[0] != "Authorization" {
		t.Errorf("parsed redaction = %+v", req.Redaction)
	}
}

func TestValidateRequestJSONRejectsBadDescriptors(t *testing.T) {
	cases := map[string]string{
		"missing url":    `{"method": "GET"}`,
		"missing method": `{"url": "https://x.test"}`,
		"bad method":     `{"url": "https://x.test", "method": "FETCH"}`,
		"non-http url":   `{"url": "ftp://x.test", "method": "GET"}`,
		"bad headers":    `{"url": "https://x.test", "method": "GET", "headers": [1]}`,
		"unknown field":  `{"url": "https://x.test", "method": "GET", "timeout": 5}`,
		"bad redaction":  `{"url": "https://x.test", "method": "GET", "redaction": [{"response": {}}]}`,
	}
	for name, doc := range cases {
		if err := ValidateRequestJSON([]byte(doc)); err == nil {
			t.Errorf("%s: accepted %s", name, doc)
		}
	}
}

func TestParseRequestBatchJSONReportsEntryIndex(t *testing.T) {
	doc := []byte(`[
		{"url": "https://a.test", "method": "GET"},
		{"method": "GET"}
	]`)
	_, err := ParseRequestBatchJSON(doc)
	if err == nil {
		t.Fatal("invalid entry accepted")
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error %q does not name the bad entry", err)
	}

	good := []byte(`[
		{"url": "https://a.test", "method": "GET"},
		{"url": "https://b.test", "method": "POST"}
	]`)
	reqs, err := ParseRequestBatchJSON(good)
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 || reqs[1].Method != "POST" {
		t.Errorf("parsed batch = %+v", reqs)
	}
}

func TestParseRequestBatchJSONRejectsNonArray(t *testing.T) {
	if _, err := ParseRequestBatchJSON([]byte(`{"url": "https://a.test"}`)); err == nil {
		t.Fatal("non-array input accepted")
	}
}
