package render

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xxxsen/deltamd/internal/config"
	"github.com/xxxsen/deltamd/internal/delta"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
)

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Converter turns a delta document into one markup dialect.
type Converter interface {
	Convert(ctx context.Context, doc *delta.Document) (*Result, error)
	Name() string
}

type Factory func(cfg config.RenderConfig) (Converter, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func New(cfg config.RenderConfig) (Converter, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Format))
	if key == "" {
		key = FormatMarkdown
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("format %q: %w", cfg.Format, appErr.ErrUnsupportedFormat)
	}
	return factory(cfg)
}

func markdownFromConfig(cfg config.RenderConfig) *Markdown {
	return NewMarkdown(
		WithListIndentWidth(cfg.ListIndentWidth),
		WithImageAlt(cfg.ImageAlt),
	)
}

func init() {
	Register(FormatMarkdown, func(cfg config.RenderConfig) (Converter, error) {
		return markdownFromConfig(cfg), nil
	})
	Register(FormatHTML, func(cfg config.RenderConfig) (Converter, error) {
		return NewHTML(markdownFromConfig(cfg)), nil
	})
}
