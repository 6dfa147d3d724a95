package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/deltamd/internal/delta"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

// EmbedRule renders one kind of embed, keyed by the embed's only field.
type EmbedRule struct {
	Key    string
	Render func(ins delta.Insert, opts Options) (string, error)
}

func DefaultEmbedRules() []EmbedRule {
	mention := func(key string) func(delta.Insert, Options) (string, error) {
		return func(ins delta.Insert, _ Options) (string, error) {
			m, _, err := delta.MentionOf(ins, key)
			if err != nil {
				return "", err
			}
			return "@" + m.Value, nil
		}
	}
	return []EmbedRule{
		{Key: "mention", Render: mention("mention")},
		{Key: "styled_mention", Render: mention("styled_mention")},
		{Key: "image", Render: func(ins delta.Insert, opts Options) (string, error) {
			url, _, err := delta.StringEmbed(ins, "image")
			if err != nil {
				return "", err
			}
			return imageMarkup(opts.ImageAlt, url), nil
		}},
	}
}

type Markdown struct {
	rules  []Rule
	embeds []EmbedRule
	opts   Options
}

type MarkdownOption func(m *Markdown)

func WithRules(rules []Rule) MarkdownOption {
	return func(m *Markdown) {
		m.rules = rules
	}
}

func WithEmbedRules(rules []EmbedRule) MarkdownOption {
	return func(m *Markdown) {
		m.embeds = rules
	}
}

func WithListIndentWidth(width int) MarkdownOption {
	return func(m *Markdown) {
		if width > 0 {
			m.opts.ListIndentWidth = width
		}
	}
}

func WithImageAlt(alt string) MarkdownOption {
	return func(m *Markdown) {
		if alt != "" {
			m.opts.ImageAlt = alt
		}
	}
}

func NewMarkdown(opts ...MarkdownOption) *Markdown {
	m := &Markdown{
		rules:  DefaultRules(),
		embeds: DefaultEmbedRules(),
		opts:   defaultOptions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Markdown) Name() string {
	return FormatMarkdown
}

// Convert never fails as a whole; a bad operation yields a fallback line and
// a failed OpResult.
func (m *Markdown) Convert(ctx context.Context, doc *delta.Document) (*Result, error) {
	res := &Result{}
	if doc == nil {
		return res, nil
	}
	logger := logutil.GetLogger(ctx)
	buf := &lineBuffer{}
	res.Ops = make([]OpResult, 0, len(doc.Ops))
	for i, op := range doc.Ops {
		r := m.convertOp(buf, i, op)
		if r.Err != nil {
			logger.Warn("convert operation failed",
				zap.Int("index", i),
				zap.String("rule", r.Rule),
				zap.Error(r.Err),
			)
		}
		res.Ops = append(res.Ops, r)
	}
	res.Output = buf.String()
	res.Markdown = res.Output
	return res, nil
}

func (m *Markdown) convertOp(buf *lineBuffer, index int, op delta.Op) (result OpResult) {
	result.Index = index
	defer func() {
		if r := recover(); r != nil {
			result.Rule = RuleFallback
			result.Err = fmt.Errorf("panic: %v: %w", r, appErr.ErrConversion)
			result.Line = fallbackLine(op)
			buf.push(result.Line)
		}
	}()

	if op.Err != nil {
		return m.fail(buf, result, op, op.Err)
	}
	if op.Insert.Kind == delta.InsertEmbed {
		return m.convertEmbed(buf, result, op)
	}

	text := strings.TrimSpace(op.Insert.Text)
	attrs := op.Attributes
	for _, rule := range m.rules {
		if !rule.Match(attrs) {
			continue
		}
		result.Rule = rule.Name
		if rule.Block && text == "" {
			if last, open := buf.last(); open {
				formatted, ok := rule.Render(last, attrs, m.opts)
				if ok {
					buf.closeLast(formatted)
					result.Line = formatted
				}
				return result
			}
		}
		formatted, ok := rule.Render(text, attrs, m.opts)
		if !ok {
			if text != "" {
				buf.push(text)
				result.Line = text
			}
			return result
		}
		buf.push(formatted)
		if rule.Block {
			buf.closeLast(formatted)
		}
		result.Line = formatted
		return result
	}
	result.Rule = RulePlain
	result.Line = text
	buf.push(text)
	return result
}

func (m *Markdown) convertEmbed(buf *lineBuffer, result OpResult, op delta.Op) OpResult {
	for _, embed := range m.embeds {
		if _, ok := op.Insert.Embed[embed.Key]; !ok {
			continue
		}
		result.Rule = "embed:" + embed.Key
		rendered, err := embed.Render(op.Insert, m.opts)
		if err != nil {
			return m.fail(buf, result, op, err)
		}
		result.Line = rendered
		buf.push(rendered)
		return result
	}
	return m.fail(buf, result, op, fmt.Errorf("no renderer for embed: %w", appErr.ErrUnknownEmbed))
}

func (m *Markdown) fail(buf *lineBuffer, result OpResult, op delta.Op, err error) OpResult {
	if result.Rule == "" {
		result.Rule = RuleFallback
	}
	result.Err = err
	result.Line = fallbackLine(op)
	buf.push(result.Line)
	return result
}

// fallbackLine is the compact JSON of the operation as it appeared in the input.
func fallbackLine(op delta.Op) string {
	if len(op.Raw) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	if err := json.Compact(&out, op.Raw); err != nil {
		return string(op.Raw)
	}
	return out.String()
}
