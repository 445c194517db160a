// Package episodeid issues human-readable, collision-free episode identifiers.
//
// An identifier is built from the publish date, the platform, and a cleaned
// interviewee name, for example 24_01_01_youtube_jane_doe_01. The trailing
// counter is tracked per base key in a small JSON cache that is persisted on
// every issuance, so the n-th identifier for a base is always {base}_{n:02d}.
//
// Reads are forgiving: a missing or corrupt cache starts empty with a warning.
// Writes are not: a failed persist is logged and returned to the caller, and
// the in-memory counter is rolled back.
package episodeid
