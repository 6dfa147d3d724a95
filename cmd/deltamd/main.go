package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/deltamd/internal/config"
	"github.com/xxxsen/deltamd/internal/delta"
	"github.com/xxxsen/deltamd/internal/pkg/errcode"
	appErr "github.com/xxxsen/deltamd/internal/pkg/errors"
	"github.com/xxxsen/deltamd/internal/render"
	"github.com/xxxsen/deltamd/internal/report"
	"github.com/xxxsen/deltamd/internal/sample"
	"github.com/xxxsen/deltamd/internal/service"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if appErr.IsInvalidDocument(err) {
			fmt.Fprintln(os.Stderr, `input must be a delta document: {"ops": [{"insert": ...}]}`)
		}
		os.Exit(errcode.FromError(err))
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "deltamd",
		Short:         "convert rich-text delta documents to markdown or html",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json or config.toml")

	loadConfig := func() (*config.Config, error) {
		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", err, appErr.ErrInvalid)
			}
			cfg = loaded
		}
		logger.Init(
			cfg.LogConfig.File,
			cfg.LogConfig.Level,
			int(cfg.LogConfig.FileCount),
			int(cfg.LogConfig.FileSize),
			int(cfg.LogConfig.KeepDays),
			cfg.LogConfig.Console,
		)
		return cfg, nil
	}

	rootCmd.AddCommand(newConvertCmd(loadConfig), newSampleCmd(), newKeysCmd(loadConfig))
	return rootCmd
}

func newConvertCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		input      string
		sampleName string
		format     string
		showReport bool
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "convert a delta document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Render.Format = format
			}
			ctx := context.Background()
			raw, err := readInput(cmd.InOrStdin(), input, sampleName)
			if err != nil {
				return err
			}
			svc, err := service.NewConvertServiceFromConfig(cfg.Render)
			if err != nil {
				return err
			}
			logutil.GetLogger(ctx).Debug("converting document",
				zap.String("format", svc.Format()),
				zap.Int("input_bytes", len(raw)),
			)
			out, err := svc.Convert(ctx, raw)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), out.Output); err != nil {
				return err
			}
			if !strings.HasSuffix(out.Output, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if showReport {
				if err := report.Write(cmd.ErrOrStderr(), out.Result, out.Warnings); err != nil {
					return err
				}
			}
			if strict && out.Result.HasFailures() {
				return fmt.Errorf("%d operations: %w", len(out.Result.Failures()), appErr.ErrPartialConversion)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "-", "delta json file, - for stdin")
	cmd.Flags().StringVar(&sampleName, "sample", "", "convert a built-in sample ("+strings.Join(sample.Names(), ", ")+")")
	cmd.Flags().StringVar(&format, "format", "", "output format ("+strings.Join(render.Formats(), ", ")+")")
	cmd.Flags().BoolVar(&showReport, "report", false, "print failed operations and warnings to stderr")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any operation failed")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "print a built-in sample document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, name := range sample.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			name := sample.Default
			if len(args) == 1 {
				name = args[0]
			}
			data, err := sample.Load(name)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list sample names")
	return cmd
}

func newKeysCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "list recognized attribute keys and aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, key := range delta.KnownKeys() {
				fmt.Fprintln(w, key)
			}
			for _, pair := range delta.NewKeySet(cfg.Render.KeyAliases).Aliases() {
				fmt.Fprintf(w, "%s -> %s\n", pair[0], pair[1])
			}
			return nil
		},
	}
}

func readInput(stdin io.Reader, input, sampleName string) ([]byte, error) {
	if sampleName != "" {
		return sample.Load(sampleName)
	}
	if input == "" || input == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %v: %w", err, appErr.ErrInvalid)
	}
	return data, nil
}
