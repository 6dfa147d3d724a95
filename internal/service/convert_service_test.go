package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/deltamd/internal/config"
	"github.com/xxxsen/deltamd/internal/delta"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
	"github.com/xxxsen/deltamd/internal/render"
	"github.com/xxxsen/deltamd/internal/sample"
)

type panicConverter struct{}

func (panicConverter) Convert(context.Context, *delta.Document) (*render.Result, error) {
	panic("top-level shape")
}

func (panicConverter) Name() string {
	return "panic"
}

func newService(t *testing.T, format string) *ConvertService {
	t.Helper()
	cfg := config.Default()
	cfg.Render.Format = format
	svc, err := NewConvertServiceFromConfig(cfg.Render)
	require.NoError(t, err)
	return svc
}

func TestConvertService_Markdown(t *testing.T) {
	data, err := sample.Load("mentions")
	require.NoError(t, err)
	out, err := newService(t, "markdown").Convert(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, "markdown", out.Format)
	require.True(t, strings.HasPrefix(out.Output, "@田中美和\n"))
	require.Equal(t, out.Result.Output, out.Output)
	require.Empty(t, out.Warnings)
}

func TestConvertService_HTML(t *testing.T) {
	data, err := sample.Load("lists")
	require.NoError(t, err)
	out, err := newService(t, "html").Convert(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, "html", out.Format)
	require.Contains(t, out.Output, "<ul>")
	require.Contains(t, out.Result.Markdown, "- Parent List 1")
}

func TestConvertService_InvalidDocument(t *testing.T) {
	svc := newService(t, "markdown")
	for _, input := range []string{`{"ops":`, `{"ops":{}}`, `true`} {
		_, err := svc.Convert(context.Background(), []byte(input))
		require.ErrorIs(t, err, appErr.ErrInvalidDocument, input)
	}
	_, err := svc.ConvertDocument(context.Background(), nil)
	require.ErrorIs(t, err, appErr.ErrInvalidDocument)
}

func TestConvertService_PartialFailure(t *testing.T) {
	out, err := newService(t, "markdown").Convert(context.Background(),
		[]byte(`{"ops":[{"insert":{"video":"v"}},{"insert":"next","attributes":{"bolt":true}}]}`))
	require.NoError(t, err)
	require.Equal(t, `{"insert":{"video":"v"}}`+"\nnext", out.Output)
	require.Len(t, out.Result.Failures(), 1)
	require.Len(t, out.Warnings, 1)
	require.Equal(t, "bold", out.Warnings[0].Suggestion)
}

func TestConvertService_KeyAliasesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.KeyAliases = map[string]string{"quote": "blockquote"}
	svc, err := NewConvertServiceFromConfig(cfg.Render)
	require.NoError(t, err)
	out, err := svc.Convert(context.Background(), []byte(`{"ops":[{"insert":"q","attributes":{"quote":true}}]}`))
	require.NoError(t, err)
	require.Equal(t, "> q", out.Output)
}

func TestConvertService_RecoversPanic(t *testing.T) {
	svc := NewConvertService(nil, panicConverter{})
	_, err := svc.Convert(context.Background(), []byte(`{"ops":[{"insert":"a"}]}`))
	require.ErrorIs(t, err, appErr.ErrConversion)
	require.Contains(t, err.Error(), "top-level shape")
}

func TestNewConvertServiceFromConfig_UnknownFormat(t *testing.T) {
	_, err := NewConvertServiceFromConfig(config.RenderConfig{Format: "rtf"})
	require.ErrorIs(t, err, appErr.ErrUnsupportedFormat)
}
