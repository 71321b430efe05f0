// Package config loads and validates the roomaudit configuration file.
//
// Configuration is a single JSON document; command-line flags overlay
// individual values on top of it. Everything is validated up front so
// a bad configuration fails before any network I/O happens. The audit
// core itself never reads files: it receives plain values.
package config
