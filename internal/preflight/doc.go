// Package preflight provides readiness checks for the filesystem paths that
// qrpayload depends on.
//
// The CLI "qrpayload status" command calls RunAll to display readiness.
// CheckOutputPath covers the optional log file; payload destinations are
// validated by the persister while a run holds the destination lock.
//
// Checks never mutate the filesystem.
package preflight
