// Package context normalizes heterogeneous configuration input formats
// (environment variables, JSON, YAML, INI) into one canonical nested
// mapping used as the variable scope for template rendering.
package context
