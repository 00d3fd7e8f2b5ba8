package render

import (
	"errors"
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// QRCode encodes a link to a rendered legend, e.g. the server's legend.svg URL.
type QRCode struct {
	Payload string
	SizePx  int
}

func (q QRCode) encoder() (*qrcode.QRCode, int, error) {
	if q.Payload == "" {
		return nil, 0, errors.New("qr code payload is empty")
	}
	size := q.SizePx
	if size <= 0 {
		size = defaultQRCodeSizePx
	}
	code, err := qrcode.New(q.Payload, qrcode.Medium)
	if err != nil {
		return nil, 0, err
	}
	return code, size, nil
}

// Image returns the QR code as an image of SizePx x SizePx pixels.
func (q QRCode) Image() (image.Image, error) {
	code, size, err := q.encoder()
	if err != nil {
		return nil, err
	}
	return code.Image(size), nil
}

// PNG returns the PNG encoding of the QR code.
func (q QRCode) PNG() ([]byte, error) {
	code, size, err := q.encoder()
	if err != nil {
		return nil, err
	}
	return code.PNG(size)
}
