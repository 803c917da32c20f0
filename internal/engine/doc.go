// Package engine migrates metadata documents forward to a target version range.
//
// Migrate reads the document version and returns immediately when the target
// range already matches it. Otherwise it walks the registry once, in
// registration order:
//
//	for each entry:
//	    stop if the target matches the current version
//	    skip the entry if its source range does not match
//	    run the migration, validate the document, re-read its version
//
// The walk never restarts. An entry whose range would match a version the
// document only reaches after the walk has moved past it is not applied.
//
// Documents are mutated in place. Any failure aborts the call and leaves the
// document with the changes made so far; callers that need all-or-nothing
// behavior migrate a copy. The engine does no I/O of its own and never
// retries.
package engine
