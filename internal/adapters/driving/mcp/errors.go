// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Lore. It lets AI assistants query the local corpus index and
// ask grounded questions.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
