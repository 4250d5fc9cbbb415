// Package router dispatches command-line invocations to subcommand handlers.
//
// Handlers are registered under space separated paths ("otp code") and run
// behind a middleware chain that recovers panics, assigns a correlation id
// and records a span, a counter and a duration per command. Results are
// printed to stdout and errors are mapped to exit codes through goerror.
package router
