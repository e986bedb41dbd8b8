// Package ocrfallback provides an opt-in OCR path for image-only
// pages: pages pdftable's core correctly produces zero tables for,
// because they carry no text operators at all.
//
// It wraps github.com/otiai10/gosseract/v2 exactly as the teacher's
// ocr package does, behind an "ocr" build tag (gosseract needs cgo
// and a local Tesseract install; most CI and most users never need
// it). Build without the tag and Client.RecognizeImage returns
// ErrOCRNotEnabled. OCR output is plain recognized text, never fed
// back into the table reconstructor — see ShouldFallback for the
// heuristic that decides when it's worth calling at all.
package ocrfallback
