// Package organize implements the relocation engine: filtering, conflict
// resolution, and the move itself, together with the error taxonomy callers
// use to tell skips from real failures.
package organize
