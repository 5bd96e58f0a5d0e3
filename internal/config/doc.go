// Package config loads, normalizes, and validates qrpayload configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// QRPAYLOAD_LOG_LEVEL and QRPAYLOAD_MAX_DEPTH. Struct-tag rules are checked
// with go-playground/validator and reported using the TOML key names.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
