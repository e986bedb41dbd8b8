// Package fontmetrics resolves a PDF page's /Font resource
// dictionary into per-font glyph-width tables, implementing
// pdftable.ResourceResolver with real metrics instead of the core's
// 0.6×font_size fallback approximation.
//
// Simple fonts (Type1, TrueType) are handled directly: Standard-14
// base fonts get built-in Adobe metrics, embedded fonts use their
// /Widths array. Text is decoded with the font's base encoding
// (MacRomanEncoding, otherwise WinAnsiEncoding) via
// golang.org/x/text/encoding/charmap; an /Encoding dictionary's
// /Differences array is not applied. Decoded text is
// normalized to NFC via golang.org/x/text/unicode/norm so merged text
// compares stably across different font embeddings of the same
// logical string.
package fontmetrics
