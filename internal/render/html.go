package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	rendererhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/xxxsen/deltamd/internal/delta"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

// HTML renders the markdown dialect's output with goldmark. Hard wraps keep
// one output line per rendered line; unsafe mode lets <u> through.
type HTML struct {
	md *Markdown
	gm goldmark.Markdown
}

func NewHTML(md *Markdown) *HTML {
	if md == nil {
		md = NewMarkdown()
	}
	return &HTML{
		md: md,
		gm: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				rendererhtml.WithHardWraps(),
				rendererhtml.WithUnsafe(),
			),
		),
	}
}

func (h *HTML) Name() string {
	return FormatHTML
}

func (h *HTML) Convert(ctx context.Context, doc *delta.Document) (*Result, error) {
	res, err := h.md.Convert(ctx, doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := h.gm.Convert([]byte(res.Markdown), &out); err != nil {
		return nil, fmt.Errorf("render html: %v: %w", err, appErr.ErrConversion)
	}
	res.Output = out.String()
	return res, nil
}
