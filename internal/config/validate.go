package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; building a validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return describeFieldError(fieldErrs[0])
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, err := parseFileMode(c.Output.FileMode); err != nil {
		return fmt.Errorf("output.file_mode: %w", err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	// Namespace is "Config.decode.max_depth"; drop the root type name.
	key := fe.Namespace()
	if idx := strings.Index(key, "."); idx >= 0 {
		key = key[idx+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", key)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Errorf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "max":
		return fmt.Errorf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s failed %q validation", key, fe.Tag())
	}
}
