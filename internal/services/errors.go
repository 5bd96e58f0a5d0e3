package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrImageRead     = errors.New("image read error")
	ErrQRNotFound    = errors.New("qr symbol not found")
	ErrIO            = errors.New("output error")
	ErrConfiguration = errors.New("configuration error")
)

// ErrorClassifier allows errors to declare their own history classification.
type ErrorClassifier interface {
	ErrorKind() string
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. A nil marker leaves the error
// untagged so codec-owned errors keep their own identity.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	switch {
	case marker != nil && err != nil:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	case marker != nil:
		return fmt.Errorf("%w: %s", marker, detail)
	case err != nil:
		return fmt.Errorf("%s: %w", detail, err)
	default:
		return errors.New(detail)
	}
}

// ErrorKind maps an error to the short label stored in run history.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrImageRead):
		return "image_read"
	case errors.Is(err, ErrQRNotFound):
		return "qr_not_found"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		if kind := strings.TrimSpace(classifier.ErrorKind()); kind != "" {
			return kind
		}
	}
	return "internal"
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
