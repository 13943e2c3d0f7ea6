package jsonquery

import (
	"testing"
)

const verificationDoc = `{
	"success": true,
	"serverDomain": "api.example.com",
	"notaryKeyFingerprint": "ab:cd:ef",
	"response": {
		"httpVersion": "1.1",
		"headers": [
			{"name": "Content-Type", "value": "application/json"},
			{"name": "Content-Length", "value": "42"}
		],
		"body": "{\"balance\": 1250.5}",
		"parseOk": true
	}
}`

func TestQueryResolvesNestedField(t *testing.T) {
	v, ok := QueryOne([]byte(verificationDoc), "$.response.headers[1].value")
	if !ok {
		t.Fatal("path did not resolve")
	}
	s, ok := v.Str()
	if !ok || s != "42" {
		t.Fatalf("value = %v, want \"42\"", v)
	}
}

func TestQueryMissingPathReturnsFalse(t *testing.T) {
	if _, ok := Query([]byte(verificationDoc), "$.response.nonexistent"); ok {
		t.Fatal("missing key resolved")
	}
	if _, ok := Query([]byte(verificationDoc), "$.response.headers[9]"); ok {
		t.Fatal("out-of-range index resolved")
	}
}

func TestQueryInvalidInputsReturnFalse(t *testing.T) {
	if _, ok := Query([]byte("{not json"), "$.a"); ok {
		t.Fatal("malformed document resolved")
	}
	if _, ok := Query([]byte(verificationDoc), ""); ok {
		t.Fatal("empty expression resolved")
	}
}

func TestQueryWildcardMatchesAllElements(t *testing.T) {
	values, ok := Query([]byte(verificationDoc), "$.response.headers[*].name")
	if !ok {
		t.Fatal("wildcard did not resolve")
	}
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, want 2", len(values))
	}
	first, _ := values[0].Str()
	second, _ := values[1].Str()
	if first != "Content-Type" || second != "Content-Length" {
		t.Errorf("names = %q, %q", first, second)
	}
}

func TestValueKindsAndAccessors(t *testing.T) {
	root, err := Parse([]byte(verificationDoc))
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind() != Object {
		t.Fatalf("root kind = %v", root.Kind())
	}

	success, ok := root.Field("success")
	if !ok || success.Kind() != Bool {
		t.Fatalf("success = %v", success)
	}
	if b, _ := success.Boolean(); !b {
		t.Error("success should be true")
	}

	response, _ := root.Field("response")
	headers, ok := response.Field("headers")
	if !ok || headers.Kind() != Array || headers.Len() != 2 {
		t.Fatalf("headers = %v len=%d", headers.Kind(), headers.Len())
	}

	if _, ok := root.Field("missing"); ok {
		t.Error("missing field resolved")
	}
	if _, ok := headers.Index(5); ok {
		t.Error("out-of-range index resolved")
	}
	if _, ok := success.Field("nested"); ok {
		t.Error("field lookup on scalar resolved")
	}
}

func TestParseScalarDocuments(t *testing.T) {
	cases := map[string]Kind{
		`"text"`: String,
		`12.5`:   Number,
		`false`:  Bool,
		`null`:   Null,
	}
	for doc, want := range cases {
		v, err := Parse([]byte(doc))
		if err != nil {
			t.Errorf("Parse(%s): %v", doc, err)
			continue
		}
		if v.Kind() != want {
			t.Errorf("Parse(%s).Kind() = %v, want %v", doc, v.Kind(), want)
		}
	}
}
