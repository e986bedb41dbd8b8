// Package model holds the data types shared by the lexer, interpreter,
// fragment merger and table reconstructor: geometric primitives, the
// intermediate text/line representations produced while walking a
// content stream, and the final Table/TableCell grid handed back to
// callers.
//
// Coordinates throughout are in PDF user space: origin at the
// bottom-left of the page, y growing upward.
package model
