package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qrpayload/internal/config"
	"qrpayload/internal/logging"
	"qrpayload/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "qrpayload.log")

	logger, err := logging.NewFromConfig(&cfg, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello file")
	logger.Debug("hidden at info level")

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello file") {
		t.Fatalf("expected message in log file, got %q", content)
	}
	if strings.Contains(string(content), "hidden at info level") {
		t.Fatalf("debug line leaked at info level: %q", content)
	}
}

func TestNewFromConfigVerboseEnablesDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "verbose.log")

	logger, err := logging.NewFromConfig(&cfg, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug visible")

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "debug visible") {
		t.Fatalf("expected debug line with verbose, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.String("kind", "raw"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if strings.Contains(text, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", text)
	}
	if !strings.Contains(text, "INFO") || !strings.Contains(text, "kind=raw") {
		t.Fatalf("unexpected console line %q", text)
	}
}

func TestConsoleLoggerPromotesComponentAndRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "0123456789abcdef")
	ctx = services.WithStage(ctx, "decode")
	scoped := logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline"))
	scoped.Info("payload decoded", logging.String("note", "two words"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "[01234567] pipeline: payload decoded") {
		t.Fatalf("expected run id and component prefix, got %q", line)
	}
	if !strings.Contains(line, "stage=decode") {
		t.Fatalf("expected stage attribute, got %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("expected quoted value, got %q", line)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-42")
	logging.WithContext(ctx, logger).Warn("careful", logging.Int("layers", 2))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &entry); err != nil {
		t.Fatalf("decode json line %q: %v", content, err)
	}
	if entry["msg"] != "careful" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry[logging.FieldRunID] != "run-42" {
		t.Fatalf("expected run_id, got %v", entry)
	}
	if entry["layers"] != float64(2) {
		t.Fatalf("expected layers=2, got %v", entry["layers"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "errors.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "write failed", "persist_failed", logging.String(logging.FieldErrorHint, "check permissions"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "event_type=persist_failed") {
		t.Fatalf("expected injected event_type, got %q", line)
	}
	if strings.Count(line, "error_hint=") != 1 || !strings.Contains(line, `"check permissions"`) {
		t.Fatalf("expected caller-provided hint only, got %q", line)
	}

	logging.ErrorWithContext(nil, "ignored", "noop")
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("dropped")

	scoped := logging.NewComponentLogger(nil, "x")
	if scoped == nil {
		t.Fatal("expected logger from nil base")
	}
}
