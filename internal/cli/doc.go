// Package cli turns command-line arguments into an invocation of the masks
// tool. It owns flag parsing, HCL option files and the mapping from errors
// to process exit codes, and nothing else: the work itself lives in
// package app.
package cli
