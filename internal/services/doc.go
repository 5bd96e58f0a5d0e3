// Package services defines shared utilities for the decode pipeline and the
// external collaborators it drives.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage names for logging.
//   - Sentinel error markers plus the Wrap helper, so every failure reaching
//     the CLI carries its stage and a stable classification (ErrorKind) for
//     run history.
//
// Collaborators that talk to third-party libraries, such as the zxing
// extraction adapter, live in subpackages.
package services
