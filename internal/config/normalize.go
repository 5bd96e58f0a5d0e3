package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDecode(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeLogging()
	return c.normalizeLogFile()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDecode() error {
	if value, ok := os.LookupEnv("QRPAYLOAD_MAX_DEPTH"); ok && strings.TrimSpace(value) != "" {
		depth, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("QRPAYLOAD_MAX_DEPTH: %w", err)
		}
		c.Decode.MaxDepth = depth
	}
	if c.Decode.MaxDepth == 0 {
		c.Decode.MaxDepth = defaultMaxDepth
	}
	c.Decode.CharacterSet = strings.TrimSpace(c.Decode.CharacterSet)
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.FileMode = strings.TrimSpace(c.Output.FileMode)
	if c.Output.FileMode == "" {
		c.Output.FileMode = defaultOutputFileModeText
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("QRPAYLOAD_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv("QRPAYLOAD_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}

func (c *Config) normalizeLogFile() error {
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
