// Package main hosts the qrpayload CLI entrypoint and command graph.
//
// The root command takes three positional arguments, a binary-mode flag, an
// input image, and an output path, and runs one interpretation pipeline.
// Subcommands inspect payloads without writing, list run history, report
// preflight status, and scaffold configuration.
//
// Keep this package lean: behaviour lives in the internal packages and is
// surfaced here through flags and rendering only.
package main
