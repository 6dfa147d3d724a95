package delta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

// Attributes holds the recognized formatting keys of an operation. Values
// follow the editor's truthiness: false, 0, "" and null mean absent.
type Attributes struct {
	Header       int
	Bold         bool
	Italic       bool
	Underline    bool
	Strike       bool
	Link         string
	List         string
	Indent       int
	Blockquote   bool
	CodeBlock    bool
	CodeLanguage string
	Image        string
	Color        string
	Background   string
	// Extra keeps keys outside the recognized set.
	Extra map[string]json.RawMessage
}

func (p *Parser) decodeAttributes(index int, raw json.RawMessage) (Attributes, []Warning, error) {
	var attrs Attributes
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return attrs, nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return attrs, nil, fmt.Errorf("attributes must be an object: %w", appErr.ErrMalformedOp)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	// Aliases first so the canonical spelling has the last word.
	sort.Slice(keys, func(i, j int) bool {
		ci := p.keys.Canonical(keys[i]) == keys[i]
		cj := p.keys.Canonical(keys[j]) == keys[j]
		if ci != cj {
			return cj
		}
		return keys[i] < keys[j]
	})

	var warnings []Warning
	for _, key := range keys {
		value := fields[key]
		canonical := p.keys.Canonical(key)
		if err := attrs.set(canonical, value); err != nil {
			return attrs, warnings, fmt.Errorf("attribute %q: %v: %w", key, err, appErr.ErrInvalidAttribute)
		}
		if isKnownKey(canonical) {
			continue
		}
		if attrs.Extra == nil {
			attrs.Extra = make(map[string]json.RawMessage)
		}
		attrs.Extra[key] = value
		w := Warning{Index: index, Key: key, Message: "unrecognized attribute"}
		if s := Suggest(key); s != "" {
			w.Suggestion = s
			w.Message = fmt.Sprintf("unrecognized attribute, did you mean %q", s)
		}
		warnings = append(warnings, w)
	}
	return attrs, warnings, nil
}

func (a *Attributes) set(key string, value json.RawMessage) error {
	var err error
	switch key {
	case KeyHeader:
		a.Header, err = decodeInt(value)
	case KeyBold:
		a.Bold, err = decodeBool(value)
	case KeyItalic:
		a.Italic, err = decodeBool(value)
	case KeyUnderline:
		a.Underline, err = decodeBool(value)
	case KeyStrike:
		a.Strike, err = decodeBool(value)
	case KeyLink:
		a.Link, err = decodeString(value)
	case KeyList:
		a.List, err = decodeString(value)
	case KeyIndent:
		a.Indent, err = decodeInt(value)
	case KeyBlockquote:
		a.Blockquote, err = decodeBool(value)
	case KeyCodeBlock:
		a.CodeBlock, a.CodeLanguage, err = decodeCodeBlock(value)
	case KeyImage:
		a.Image, err = decodeString(value)
	case KeyColor:
		a.Color, err = decodeString(value)
	case KeyBackground:
		a.Background, err = decodeString(value)
	}
	return err
}

func decodeBool(raw json.RawMessage) (bool, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, err
	}
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case string:
		return t != "", nil
	default:
		return false, fmt.Errorf("expected boolean")
	}
}

func decodeInt(raw json.RawMessage) (int, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(t), nil
	case string:
		if t == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer")
	}
}

func decodeString(raw json.RawMessage) (string, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		if !t {
			return "", nil
		}
	}
	return "", fmt.Errorf("expected string")
}

// decodeCodeBlock accepts true/false or a language name.
func decodeCodeBlock(raw json.RawMessage) (bool, string, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, "", err
	}
	switch t := v.(type) {
	case nil:
		return false, "", nil
	case bool:
		return t, "", nil
	case string:
		return t != "", t, nil
	default:
		return false, "", fmt.Errorf("expected boolean or language")
	}
}
