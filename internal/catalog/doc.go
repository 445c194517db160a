// Package catalog owns the podcast episode catalog: an ordered list of Entry
// records persisted as a JSON array.
//
// The catalog is loaded when opened and rewritten after every mutation via a
// temp file and rename, so a partially written file never replaces the
// catalog. Loading is forgiving: a missing file is an empty catalog and a
// malformed one is logged and treated as empty. Writes report their errors.
//
// There is no locking. Two invocations writing the same catalog race and the
// last writer wins.
//
// Identifiers come from an IDAllocator (see package episodeid). Removing an
// entry applies the configured cleanup policy to the allocator: reset_all
// clears every counter, decrement_one releases the removed identifier when it
// was the newest of its base.
package catalog
