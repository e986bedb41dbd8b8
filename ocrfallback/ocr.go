//go:build ocr

package ocrfallback

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract engine instance for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. The client should be closed when no
// longer needed to release Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the underlying Tesseract engine.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage runs OCR over raw image bytes (PNG, TIFF, JPEG)
// decoded from a page's image XObject and returns the recognized
// text, trimmed of leading/trailing whitespace.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("ocrfallback: set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocrfallback: recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the OCR language(s), "+"-joined (e.g. "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
