package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/deltamd/internal/config"
	"github.com/xxxsen/deltamd/internal/delta"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
	"github.com/xxxsen/deltamd/internal/render"
)

type ConvertOutput struct {
	Format   string          `json:"format"`
	Output   string          `json:"output"`
	Result   *render.Result  `json:"result"`
	Warnings []delta.Warning `json:"warnings,omitempty"`
}

type ConvertService struct {
	parser    *delta.Parser
	converter render.Converter
}

func NewConvertService(parser *delta.Parser, converter render.Converter) *ConvertService {
	if parser == nil {
		parser = delta.NewParser(nil)
	}
	return &ConvertService{parser: parser, converter: converter}
}

func NewConvertServiceFromConfig(cfg config.RenderConfig) (*ConvertService, error) {
	converter, err := render.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewConvertService(delta.NewParser(delta.NewKeySet(cfg.KeyAliases)), converter), nil
}

func (s *ConvertService) Format() string {
	return s.converter.Name()
}

// Convert parses raw delta JSON and converts it. A document that cannot be
// parsed is rejected before the converter runs.
func (s *ConvertService) Convert(ctx context.Context, raw []byte) (*ConvertOutput, error) {
	logger := logutil.GetLogger(ctx)
	doc, warnings, err := s.parser.Parse(raw)
	if err != nil {
		logger.Warn("parse delta document failed", zap.Error(err))
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("delta attribute warning",
			zap.Int("index", w.Index),
			zap.String("key", w.Key),
			zap.String("suggestion", w.Suggestion),
		)
	}
	out, err := s.ConvertDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	out.Warnings = warnings
	return out, nil
}

func (s *ConvertService) ConvertDocument(ctx context.Context, doc *delta.Document) (out *ConvertOutput, err error) {
	logger := logutil.GetLogger(ctx).With(zap.String("format", s.converter.Name()))
	if doc == nil {
		return nil, fmt.Errorf("nil document: %w", appErr.ErrInvalidDocument)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("conversion panicked", zap.Any("panic", r))
			out = nil
			err = fmt.Errorf("%v: %w", r, appErr.ErrConversion)
		}
	}()

	res, err := s.converter.Convert(ctx, doc)
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return nil, err
	}
	failures := res.Failures()
	logger.Debug("conversion finished",
		zap.Int("ops", len(doc.Ops)),
		zap.Int("failures", len(failures)),
		zap.Int("output_bytes", len(res.Output)),
	)
	if len(failures) > 0 {
		logger.Info("conversion finished with failed operations", zap.Int("failures", len(failures)))
	}
	return &ConvertOutput{
		Format: s.converter.Name(),
		Output: res.Output,
		Result: res,
	}, nil
}
