// Package cli implements the interactive lockbox shell: a small REPL
// over the auth and vault services. All state lives in the services;
// this package only does prompts, parsing, and printing.
package cli
