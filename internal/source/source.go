// Package source decodes the image files a background resolves to and
// keeps recently used frames in memory.
package source

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/gen2brain/go-fitz"
)

// Decoder turns an encoded file into an image.
type Decoder interface {
	Decode(r io.Reader) (image.Image, error)
}

// PDFDecoder rasterizes the first page of a PDF document.
type PDFDecoder struct {
	DPI int
}

func (d *PDFDecoder) Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	dpi := d.DPI
	if dpi <= 0 {
		dpi = 150
	}
	return doc.ImageDPI(0, float64(dpi))
}

// isPDF sniffs the PDF magic number.
func isPDF(head []byte) bool {
	return bytes.HasPrefix(head, []byte("%PDF-"))
}
