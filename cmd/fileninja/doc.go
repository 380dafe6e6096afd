// Package main hosts the fileninja CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon, one-shot organize runs, classification previews,
// and configuration scaffolding. Configuration resolution and API client
// construction are centralized so subcommands stay declarative.
package main
