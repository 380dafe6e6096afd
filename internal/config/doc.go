// Package config loads and validates the fileninja configuration file and the
// optional classification rules overlay. The config itself is JSON; rules use
// TOML. All paths are expanded and absolute after Load returns.
package config
