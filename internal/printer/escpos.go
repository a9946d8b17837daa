package printer

import (
	"bytes"
	"image"
)

// ESC/POS control bytes
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	FS  byte = 0x1C
	LF  byte = 0x0A
)

// Encoder builds a linear ESC/POS command stream. Every byte written
// maps 1:1 to a byte on the wire; String exposes the same stream as a
// string whose characters are the raw 0x00-0xFF values.
type Encoder struct {
	buffer *bytes.Buffer
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		buffer: new(bytes.Buffer),
	}
}

// Initialize emits the printer init command (ESC @).
func (e *Encoder) Initialize() {
	e.buffer.WriteByte(ESC)
	e.buffer.WriteByte('@')
}

// Cut emits a full paper cut (GS V 0).
func (e *Encoder) Cut() {
	e.buffer.WriteByte(GS)
	e.buffer.WriteByte('V')
	e.buffer.WriteByte(0)
}

// PartialCut emits a partial paper cut.
func (e *Encoder) PartialCut() {
	e.buffer.WriteByte(GS)
	e.buffer.WriteByte('V')
	e.buffer.WriteByte(1)
}

// LineFeed emits a single line feed.
func (e *Encoder) LineFeed() {
	e.buffer.WriteByte(LF)
}

// Feed emits the given number of line feeds.
func (e *Encoder) Feed(lines int) {
	for i := 0; i < lines; i++ {
		e.LineFeed()
	}
}

// SetAlignment sets text alignment (ESC a n). Unknown values fall
// back to left.
func (e *Encoder) SetAlignment(align string) {
	e.buffer.WriteByte(ESC)
	e.buffer.WriteByte('a')

	switch align {
	case "center":
		e.buffer.WriteByte(1)
	case "right":
		e.buffer.WriteByte(2)
	default:
		e.buffer.WriteByte(0)
	}
}

// SetTextSize sets character magnification (GS ! n). Width and height
// are clamped to the 1..8 range the protocol allows.
func (e *Encoder) SetTextSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width > 8 {
		width = 8
	}
	if height > 8 {
		height = 8
	}

	size := byte(((width - 1) << 4) | (height - 1))

	e.buffer.WriteByte(GS)
	e.buffer.WriteByte('!')
	e.buffer.WriteByte(size)
}

// SetBold enables or disables emphasized mode (ESC E n).
func (e *Encoder) SetBold(enabled bool) {
	e.buffer.WriteByte(ESC)
	e.buffer.WriteByte('E')
	if enabled {
		e.buffer.WriteByte(1)
	} else {
		e.buffer.WriteByte(0)
	}
}

// WriteText appends literal text to the stream.
func (e *Encoder) WriteText(text string) {
	e.buffer.WriteString(text)
}

// WriteLine appends text followed by a line feed.
func (e *Encoder) WriteLine(text string) {
	e.buffer.WriteString(text)
	e.LineFeed()
}

// QRCode emits the full QR sequence: model selection, module size,
// error correction, length-prefixed data store and print trigger
// (GS ( k function set).
func (e *Encoder) QRCode(data string) {
	// Model 2
	e.buffer.Write([]byte{GS, '(', 'k', 4, 0, '1', 'A', '2', 0})
	// Module size 8
	e.buffer.Write([]byte{GS, '(', 'k', 3, 0, '1', 'C', 8})
	// Error correction level L
	e.buffer.Write([]byte{GS, '(', 'k', 3, 0, '1', 'E', '0'})

	// Store data: the length bytes cover the data plus the three
	// function bytes that follow them.
	n := len(data) + 3
	e.buffer.Write([]byte{GS, '(', 'k', byte(n & 0xFF), byte((n >> 8) & 0xFF), '1', 'P', '0'})
	e.buffer.WriteString(data)

	// Print the stored symbol
	e.buffer.Write([]byte{GS, '(', 'k', 3, 0, '1', 'Q', '0'})
}

// PrintImage converts an image to ESC/POS raster graphics using the
// 24-dot double-density bit image mode.
func (e *Encoder) PrintImage(img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bitmap := imageToBitmap(img)
	bytesPerLine := (width + 7) / 8

	for y := 0; y < height; y++ {
		e.buffer.WriteByte(ESC)
		e.buffer.WriteByte('*')
		e.buffer.WriteByte(33)
		e.buffer.WriteByte(byte(bytesPerLine & 0xFF))
		e.buffer.WriteByte(byte((bytesPerLine >> 8) & 0xFF))

		e.buffer.Write(bitmap[y*bytesPerLine : (y+1)*bytesPerLine])

		e.LineFeed()
	}
}

// Bytes returns the generated command stream.
func (e *Encoder) Bytes() []byte {
	return e.buffer.Bytes()
}

// String returns the command stream as a string whose characters map
// 1:1 to the command bytes.
func (e *Encoder) String() string {
	return e.buffer.String()
}

// Len returns the current stream length.
func (e *Encoder) Len() int {
	return e.buffer.Len()
}

// Reset clears the buffer.
func (e *Encoder) Reset() {
	e.buffer.Reset()
}

// imageToBitmap converts an image to a 1-bit bitmap, thresholding
// grayscale at 50%.
func imageToBitmap(img image.Image) []byte {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bytesPerLine := (width + 7) / 8
	bitmap := make([]byte, bytesPerLine*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()

			gray := (r + g + b) / 3
			if gray < 32768 {
				byteIndex := y*bytesPerLine + x/8
				bitIndex := 7 - (x % 8)
				bitmap[byteIndex] |= 1 << bitIndex
			}
		}
	}

	return bitmap
}

// EncodeImage wraps a rendered receipt image in a complete print
// sequence: init, raster data, trailing feed and cut.
func EncodeImage(img image.Image) []byte {
	e := NewEncoder()
	e.Initialize()
	e.PrintImage(img)
	e.Feed(3)
	e.Cut()
	return e.Bytes()
}
