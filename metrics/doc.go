// Package metrics defines the Sink interface httpapi and cmd/pdftable
// report extraction outcomes to, plus a simple in-memory
// implementation.
//
// No third-party metrics client appears anywhere in the example
// corpus this module was grounded on, so this collaborator is
// stdlib-only by necessity rather than by choice — see DESIGN.md.
package metrics
