package webproof

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schema for externally supplied request descriptors (e.g. batch input
// files). In-process callers construct ProofRequest directly and skip this.
const requestDescriptorSchema = `{
  "type": "object",
  "required": ["url", "method"],
  "additionalProperties": false,
  "properties": {
    "url": {"type": "string", "format": "descriptor-url"},
    "method": {"type": "string", "enum": ["GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"]},
    "headers": {"type": "array", "items": {"type": "string"}},
    "maxRecvData": {"type": "integer", "minimum": 1},
    "redaction": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["request"],
        "additionalProperties": false,
        "properties": {
          "request": {
            "type": "object",
            "required": ["headers"],
            "additionalProperties": false,
            "properties": {
              "headers": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    }
  }
}`

var compiledDescriptorSchema *gojsonschema.Schema

func init() {
	gojsonschema.FormatCheckers.Add("descriptor-url", descriptorURLFormatChecker{})

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestDescriptorSchema))
	if err != nil {
		panic(fmt.Sprintf("request descriptor schema does not compile: %v", err))
	}
	compiledDescriptorSchema = schema
}

type descriptorURLFormatChecker struct{}

func (descriptorURLFormatChecker) IsFormat(input interface{}) bool {
	str, ok := input.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(str, "http://") || strings.HasPrefix(str, "https://")
}

// ValidateRequestJSON checks a single request-descriptor document against the
// embedded schema. Violations are aggregated into one ValidationError.
func ValidateRequestJSON(data []byte) error {
	result, err := compiledDescriptorSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return NewValidationError("request descriptor is not valid JSON", err)
	}
	if !result.Valid() {
		var b strings.Builder
		for _, e := range result.Errors() {
			if b.Len() > 0 {
				b.WriteString("; ")
			}
			b.WriteString(e.String())
		}
		return NewValidationError("request descriptor failed validation: "+b.String(), nil)
	}
	return nil
}

// ParseRequestJSON validates and unmarshals one request descriptor.
func ParseRequestJSON(data []byte) (*ProofRequest, error) {
	if err := ValidateRequestJSON(data); err != nil {
		return nil, err
	}
	var req ProofRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, NewValidationError("could not unmarshal request descriptor", err)
	}
	return &req, nil
}

// ParseRequestBatchJSON validates and unmarshals a JSON array of request
// descriptors, reporting the index of the first invalid entry.
func ParseRequestBatchJSON(data []byte) ([]ProofRequest, error) {
	var rawEntries []json.RawMessage
	if err := json.Unmarshal(data, &rawEntries); err != nil {
		return nil, NewValidationError("batch input must be a JSON array of request descriptors", err)
	}

	reqs := make([]ProofRequest, 0, len(rawEntries))
	for i, raw := range rawEntries {
		req, err := ParseRequestJSON(raw)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("entry %d is invalid", i), err)
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}
