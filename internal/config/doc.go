// Package config loads, normalizes, and validates podcasts configuration data.
//
// Two files are involved. The TOML installation config supplies the data
// directory, state file locations, fetcher endpoints, HTTP timeouts, the
// identifier cleanup policy, and logging options, honouring the
// YOUTUBE_API_KEY environment fallback. The JSON settings file is the small
// user-facing document edited by `podcasts config`; it decides whether notes
// and transcripts land inside an Obsidian vault or under the data directory.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and clear validation errors.
package config
