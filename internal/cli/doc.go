// Package cli provides the interactive FleetCheck command-line client.
//
// It drives the session manager and the checklist service from a simple
// read-eval-print loop: sign in, create and fill inspection checklists,
// list and inspect them, and export them as documents.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See App and runREPL for details.
package cli
