// Package codec decodes stored documents into the domain model.
//
// Decoding is lenient: a document that is valid JSON always decodes, and
// shape violations (a non-string text, a content field that is not a list,
// marks that are not objects) are reported as domain.Issue values while the
// offending node is flagged Malformed. Only bytes that are not JSON at all
// fail with domain.ErrInvalidDocument.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/collecty/richtext/pkg/domain"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Decode parses a JSON document. A top-level array yields domain.Nodes, an
// object yields a domain.Node, and null or empty input yields nil.
func Decode(data []byte) (domain.Input, []domain.Issue, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, nil, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidDocument)
	}

	root := gjson.ParseBytes(trimmed)
	d := &decoder{}
	switch {
	case root.Type == gjson.Null:
		return nil, nil, nil
	case root.IsArray():
		return domain.Nodes(d.nodes(root, "$")), d.issues, nil
	case root.IsObject():
		return d.node(root, "$"), d.issues, nil
	default:
		return nil, nil, fmt.Errorf("%w: top level must be an object or an array, got %s", domain.ErrInvalidDocument, root.Type)
	}
}

// DecodeYAML parses a YAML document with the same rules as Decode.
func DecodeYAML(data []byte) (domain.Input, []domain.Issue, error) {
	normalized, err := YAMLToJSON(data)
	if err != nil {
		return nil, nil, err
	}
	return Decode(normalized)
}

// YAMLToJSON re-encodes a YAML document as JSON so it can flow through the
// JSON decoding paths. An empty YAML document becomes null.
func YAMLToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if raw == nil {
		return []byte("null"), nil
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return normalized, nil
}

// Encode serializes an input back to canonical JSON. A nil input encodes as null.
func Encode(in domain.Input) ([]byte, error) {
	switch v := in.(type) {
	case nil:
		return []byte("null"), nil
	case *domain.Node:
		if v == nil {
			return []byte("null"), nil
		}
		return json.Marshal(v)
	default:
		return json.Marshal(v)
	}
}
