// Package server implements the MCP (Model Context Protocol) server for the
// masks tool.
//
// This package provides a JSON-RPC 2.0 server that exposes mask creation and
// volume inspection through the MCP protocol, so that MCP-compatible clients
// can build masks and check them visually without a shell.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: stderr, through the logger given to New
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Masks:
//   - mask_make: Build a mask, optionally save it, return stats and a preview
//   - mask_apply: Build a mask and multiply it into an image file
//   - mask_validate: Check that a mask fits its canvas
//
// Volumes:
//   - volume_info: Shape, value range and calibration of a grid file
//   - volume_preview: Render a grid file (or one slice of it) as PNG
//
// Mask options use the same names, defaults and validation as the command
// line (image_size, mask_size, mask_pos, dimension, shape, ...).
//
// # State
//
// Each tool call is an independent invocation. Nothing is cached between
// calls: files are read and written afresh every time.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// mask_validate is the exception: a mask that does not fit is a normal
// result with valid set to false.
//
// # Usage
//
// The server is typically started by an MCP client running "masks serve":
//
//	srv := server.New(logger, version)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
