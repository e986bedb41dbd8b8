// Package merge collapses the raw TextFragments and LineSegments an
// interp.Interpreter emits into logical TextElements and RuledLines:
// adjacent same-baseline fragments become words/phrases, and collinear
// stroked segments become table rulings.
//
// Merging only groups what is already adjacent in reading order; it
// never reorders beyond the initial baseline/x sort, leaving column
// and row detection to the tables package.
package merge
