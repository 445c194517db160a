// Package workflow implements the command-level flows of the podcasts CLI.
//
// A Service ties the catalog to the per-platform fetchers (resolved through a
// SourceResolver) and writes the user-facing summaries. AddPodcast fetches
// metadata and records an entry, asking before an already catalogued URL is
// overwritten. ProcessPodcast moves an entry through processing to complete
// (or error), writing the transcript and episode Markdown along the way.
// CleanupPodcast removes an entry with its artifacts, and TestPrompt renders
// the analysis prompt for built-in sample metadata.
package workflow
