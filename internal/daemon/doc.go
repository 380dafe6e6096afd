// Package daemon runs the long-lived fileninja process: it holds the watch
// session, the movement history store, and the HTTP API, and uses a file lock
// to ensure only one instance runs per data directory.
package daemon
