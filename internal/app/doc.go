// Package app wires configuration, preferences, the API client, the
// state store, and the TUI into a runnable program.
package app
