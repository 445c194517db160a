// Package main hosts the podcasts CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration (TOML file, .env, and the
// JSON output settings), sets up the per-run logger, and hands each command
// to the workflow package. Commands stay thin: fetching, cataloguing, and
// note generation live in the internal packages.
package main
