// Package driving provides interfaces through which external actors
// (CLI, TUI, MCP) invoke the application core (primary/inbound ports).
package driving
