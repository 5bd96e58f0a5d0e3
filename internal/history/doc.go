// Package history persists a record of every pipeline run in SQLite.
//
// Each run stores the input image, the output path, the interpretation mode,
// the classified kind and nesting depth, the number of bytes persisted, and
// the content identifier of those bytes. Failed runs keep the terminal error
// and its classification so "qrpayload history" can show why a run stopped.
//
// The database is a local audit log rather than a source of truth for any
// decode decision; nothing in the pipeline reads it back. Schema changes bump
// the version in schema.go; users delete the database to adopt a new schema.
package history
