// Package app contains the mask-making workflow. It turns a raw option set
// into a validated Config and runs it, decoupled from any entrypoint like
// the CLI or the MCP server.
package app
