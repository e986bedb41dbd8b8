//go:build !ocr

// This is the stub implementation used when the "ocr" build tag is
// not set. All functions return ErrOCRNotEnabled. Rebuild with
// `go build -tags ocr` (and a local Tesseract install) to enable it.
package ocrfallback

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in.
var ErrOCRNotEnabled = errors.New("ocrfallback: OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client; safe to call on nil.
func (c *Client) Close() error { return nil }

// RecognizeImage always returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage always returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
