package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Code128PNG renders content as a scaled Code 128 PNG.
func Code128PNG(content string, width, height int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("barcode content must not be empty")
	}

	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}

	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
