package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jamesainslie/metachk/pkg/metachk/config"
	"github.com/jamesainslie/metachk/pkg/metachk/index"
	"github.com/jamesainslie/metachk/pkg/metachk/inode"
	"github.com/jamesainslie/metachk/pkg/metachk/logging"
	"github.com/jamesainslie/metachk/pkg/metachk/manifest"
	"github.com/jamesainslie/metachk/pkg/metachk/output"
	"github.com/jamesainslie/metachk/pkg/metachk/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runCheck is the main audit command handler.
func runCheck(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; failures past this point are not
	// usage errors and must not reprint the usage text.
	cmd.SilenceUsage = true

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level: logLevel(),
		Path:  cfg.Logging.Path,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	manifestPath, err := config.ExpandPath(args[0])
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	return runAudit(manifestPath, cfg, os.Stdout)
}

// effectiveConfig collects the merged flag/env/file settings from viper and
// validates them before any work starts.
func effectiveConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runAudit parses the manifest at path and writes the formatted report to w.
// The report is the only thing written to w; diagnostics go through the
// logging package.
func runAudit(path string, cfg *config.Config, w io.Writer) error {
	logger := logging.Get("check")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	records, parseErrs, err := manifest.Parse(f)
	if err != nil {
		return err
	}
	for _, perr := range parseErrs {
		logger.Warn("skipping malformed manifest line", "line", perr.Line, "text", perr.Text)
	}
	logger.Debug("parsed manifest", "path", path, "records", len(records), "malformed", len(parseErrs))

	idx := index.Build(records)

	opts := report.Options{
		Source:    path,
		HardLinks: cfg.InodeReport.Enabled,
	}
	if opts.HardLinks {
		opts.Stater = inode.NewStater(cfg.Root)
	}

	rep := report.Generate(idx, opts)
	rep.ParseErrors = len(parseErrs)

	formatter, err := output.Get(cfg.Format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, rep); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}
