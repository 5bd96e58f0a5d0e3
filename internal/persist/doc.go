// Package persist writes interpreted payloads to their destination file.
//
// Writes are all-or-nothing: bytes go to a synced temporary sibling that is
// renamed over the destination, so a failed run never leaves a truncated or
// partially written file. Concurrent runs that target the same destination
// serialize on an advisory lock kept under the state directory.
package persist
