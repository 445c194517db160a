// Package logs locates and reads the per-run JSON log files written when
// paths.log_dir is configured.
//
// Run logs are named podcasts-<UTC timestamp>-<run id>.log, so lexical order is
// chronological. Tail reads the last lines of a file with bounded memory.
package logs
