package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/jamesainslie/metachk/pkg/metachk/config"
	"github.com/jamesainslie/metachk/pkg/metachk/logging"
)

// writeManifest writes manifest text to a temp file and returns its path.
func writeManifest(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "METALOG")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// auditConfig returns the default audit settings used by the tests.
func auditConfig() *config.Config {
	return &config.Config{Format: "plain", Root: "."}
}

func TestRunAuditPackageSummary(t *testing.T) {
	path := writeManifest(t, strings.Join([]string{
		"./bin/x mode=0755 type=file size=100 tags=package=core",
		"./bin/y mode=0755 type=file size=50 tags=package=core",
	}, "\n"))

	var buf bytes.Buffer
	if err := runAudit(path, auditConfig(), &buf); err != nil {
		t.Fatalf("runAudit() error = %v", err)
	}

	want := "Package core:\n\tfiles: 2\n\tsize: 150\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunAuditDuplicateWarning(t *testing.T) {
	path := writeManifest(t, strings.Join([]string{
		"./etc/foo mode=0644 size=10 type=file",
		"./etc/foo mode=0644 size=10 type=file",
	}, "\n"))

	var buf bytes.Buffer
	if err := runAudit(path, auditConfig(), &buf); err != nil {
		t.Fatalf("runAudit() error = %v", err)
	}

	want := "warning: ./etc/foo exists in multiple locations: line 1,2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunAuditMissingManifest(t *testing.T) {
	var buf bytes.Buffer
	err := runAudit(filepath.Join(t.TempDir(), "absent"), auditConfig(), &buf)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if buf.Len() != 0 {
		t.Errorf("no report may be produced on a file-open error, got %q", buf.String())
	}
}

func TestRunAuditMalformedLineSkipped(t *testing.T) {
	path := writeManifest(t, strings.Join([]string{
		"./ok mode=0644 type=file size=5 tags=package=core",
		"malformed-line-without-attributes",
	}, "\n"))

	var buf bytes.Buffer
	if err := runAudit(path, auditConfig(), &buf); err != nil {
		t.Fatalf("runAudit() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Package core:") {
		t.Errorf("malformed line must not abort the audit, got %q", buf.String())
	}
}

func TestRunAuditIdempotent(t *testing.T) {
	path := writeManifest(t, strings.Join([]string{
		"./bin/x mode=4755 type=file size=100 tags=package=base",
		"./etc/foo mode=0644 type=file size=10",
		"./etc/foo mode=0640 type=file size=10",
	}, "\n"))

	var first, second bytes.Buffer
	if err := runAudit(path, auditConfig(), &first); err != nil {
		t.Fatal(err)
	}
	if err := runAudit(path, auditConfig(), &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("output must be byte-identical across runs on unchanged input")
	}
}

func TestEffectiveConfigValidatesFormat(t *testing.T) {
	viper.Set("format", "csv")
	viper.Set("root", ".")
	t.Cleanup(func() {
		viper.Set("format", "plain")
		viper.Set("root", ".")
	})

	_, err := effectiveConfig()
	if err == nil {
		t.Fatal("an unknown format must be rejected before any work starts")
	}
	if !errors.Is(err, config.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestEffectiveConfigAcceptsDefaults(t *testing.T) {
	viper.Set("format", "plain")
	viper.Set("root", ".")
	t.Cleanup(func() {
		viper.Set("format", "plain")
		viper.Set("root", ".")
	})

	cfg, err := effectiveConfig()
	if err != nil {
		t.Fatalf("effectiveConfig() error = %v", err)
	}
	if cfg.Format != "plain" {
		t.Errorf("Format = %q, want plain", cfg.Format)
	}
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "format", "root", "inodes", "quiet", "verbose", "log-file"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
}

func TestLogFileFlagDefaultsToStatePath(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("log-file")
	if flag == nil {
		t.Fatal("missing log-file flag")
	}
	// A bare --log-file must select the XDG state location.
	if flag.NoOptDefVal != logging.DefaultLogPath() {
		t.Errorf("log-file NoOptDefVal = %q, want %q", flag.NoOptDefVal, logging.DefaultLogPath())
	}
	if flag.DefValue != "" {
		t.Errorf("log-file default = %q, want empty (stderr only)", flag.DefValue)
	}
}

func TestRootCommandRequiresManifestArg(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{}); err == nil {
		t.Error("missing manifest path must be a usage error")
	}
	if err := rootCmd.Args(rootCmd, []string{"METALOG"}); err != nil {
		t.Errorf("one argument should be accepted, got %v", err)
	}
}

func TestConfigCommandsRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"config", "show"})
	if err != nil || cmd.Name() != "show" {
		t.Errorf("config show not registered: %v", err)
	}
	cmd, _, err = rootCmd.Find([]string{"config", "path"})
	if err != nil || cmd.Name() != "path" {
		t.Errorf("config path not registered: %v", err)
	}
}
