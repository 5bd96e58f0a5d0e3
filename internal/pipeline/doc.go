// Package pipeline runs one payload interpretation end to end.
//
// A run loads the input image, extracts the symbol text, classifies and
// decodes it (binary mode only), and persists the result. States advance
// linearly through Start, Extracted, Classified, Decoded and Persisted; any
// failure ends the run in Failed with the originating error and the state the
// run had reached. There are no retries and no fallbacks between decode
// paths.
//
// Every run, successful or not, is handed to an optional Recorder so the
// history command can list it later.
package pipeline
