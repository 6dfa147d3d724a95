package delta

import (
	"bytes"
	"encoding/json"
	"fmt"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

// Document is an ordered sequence of insert operations.
type Document struct {
	Ops []Op
}

type InsertKind int

const (
	InsertText InsertKind = iota
	InsertEmbed
)

type Insert struct {
	Kind  InsertKind
	Text  string
	Embed map[string]json.RawMessage
}

type Mention struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Op is one operation of a document. Err is set when the operation could not
// be decoded; Raw always holds the operation as it appeared in the input.
type Op struct {
	Raw        json.RawMessage
	Insert     Insert
	Attributes Attributes
	Err        error
}

func (o Op) IsEmbed() bool {
	return o.Err == nil && o.Insert.Kind == InsertEmbed
}

// Warning is a non-fatal observation made while parsing.
type Warning struct {
	Index      int    `json:"index"`
	Key        string `json:"key"`
	Suggestion string `json:"suggestion,omitempty"`
	Message    string `json:"message"`
}

type Parser struct {
	keys *KeySet
}

func NewParser(keys *KeySet) *Parser {
	if keys == nil {
		keys = NewKeySet(nil)
	}
	return &Parser{keys: keys}
}

// Parse decodes a delta document with the default key set.
func Parse(data []byte) (*Document, error) {
	doc, _, err := NewParser(nil).Parse(data)
	return doc, err
}

// Parse decodes {"ops": [...]} or a bare operation array. Only the top-level
// shape can fail the whole document; problems inside one operation are kept
// on that operation.
func (p *Parser) Parse(data []byte) (*Document, []Warning, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("empty input: %w", appErr.ErrInvalidDocument)
	}
	var rawOps []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &rawOps); err != nil {
			return nil, nil, fmt.Errorf("decode ops: %v: %w", err, appErr.ErrInvalidDocument)
		}
	case '{':
		var envelope struct {
			Ops *[]json.RawMessage `json:"ops"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, nil, fmt.Errorf("decode document: %v: %w", err, appErr.ErrInvalidDocument)
		}
		if envelope.Ops == nil {
			return nil, nil, fmt.Errorf("missing ops: %w", appErr.ErrInvalidDocument)
		}
		rawOps = *envelope.Ops
	default:
		if !json.Valid(trimmed) {
			return nil, nil, fmt.Errorf("malformed json: %w", appErr.ErrInvalidDocument)
		}
		return nil, nil, fmt.Errorf("document must be an object or an array: %w", appErr.ErrInvalidDocument)
	}

	doc := &Document{Ops: make([]Op, 0, len(rawOps))}
	var warnings []Warning
	for i, raw := range rawOps {
		op, opWarnings := p.decodeOp(i, raw)
		doc.Ops = append(doc.Ops, op)
		warnings = append(warnings, opWarnings...)
	}
	return doc, warnings, nil
}

func (p *Parser) decodeOp(index int, raw json.RawMessage) (Op, []Warning) {
	op := Op{Raw: raw}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		op.Err = fmt.Errorf("operation is not an object: %w", appErr.ErrMalformedOp)
		return op, nil
	}
	insert, ok := fields["insert"]
	if !ok {
		op.Err = fmt.Errorf("missing insert: %w", appErr.ErrMalformedOp)
		return op, nil
	}
	ins, err := decodeInsert(insert)
	if err != nil {
		op.Err = err
		return op, nil
	}
	op.Insert = ins

	attrs, warnings, err := p.decodeAttributes(index, fields["attributes"])
	if err != nil {
		op.Err = err
		return op, warnings
	}
	op.Attributes = attrs
	return op, warnings
}

func decodeInsert(raw json.RawMessage) (Insert, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Insert{}, fmt.Errorf("empty insert: %w", appErr.ErrMalformedOp)
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Insert{}, fmt.Errorf("decode text insert: %v: %w", err, appErr.ErrMalformedOp)
		}
		return Insert{Kind: InsertText, Text: text}, nil
	case '{':
		var embed map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &embed); err != nil {
			return Insert{}, fmt.Errorf("decode embed insert: %v: %w", err, appErr.ErrMalformedOp)
		}
		return Insert{Kind: InsertEmbed, Embed: embed}, nil
	default:
		return Insert{}, fmt.Errorf("insert of type %s: %w", jsonKind(trimmed), appErr.ErrUnsupportedPayload)
	}
}

// MentionOf extracts a mention payload from an embed under the given key.
func MentionOf(ins Insert, key string) (*Mention, bool, error) {
	raw, ok := ins.Embed[key]
	if !ok {
		return nil, false, nil
	}
	var m Mention
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, true, fmt.Errorf("decode %s: %v: %w", key, err, appErr.ErrMalformedOp)
	}
	if m.Value == "" {
		return nil, true, fmt.Errorf("%s without value: %w", key, appErr.ErrMalformedOp)
	}
	return &m, true, nil
}

// StringEmbed extracts a string embed such as {"image": "https://..."}.
func StringEmbed(ins Insert, key string) (string, bool, error) {
	raw, ok := ins.Embed[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", true, fmt.Errorf("%s embed must be a non-empty string: %w", key, appErr.ErrMalformedOp)
	}
	return s, true, nil
}

func jsonKind(raw []byte) string {
	switch raw[0] {
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
