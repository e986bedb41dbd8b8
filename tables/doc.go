// Package tables reconstructs tabular structure from the TextElements
// and RuledLines the merge package produces for a single page.
//
// Reconstruction runs in six phases: row bucketing, column frequency
// analysis, per-row scoring, run accumulation, grid formation with
// span detection, and final table scoring/validation. The algorithm
// is deterministic: the same elements and lines always produce the
// same tables.
package tables
