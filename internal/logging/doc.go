// Package logging builds the slog loggers used across fileninja. It provides
// console and JSON handlers, attribute helpers, and standardized field keys so
// every component logs in the same shape.
package logging
