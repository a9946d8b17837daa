// Package preview renders receipt templates to raster images
package preview

import (
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg"

	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// Renderer draws a template onto a canvas the width of the target
// paper, growing the canvas as components are laid out and cropping
// to the content height at the end.
type Renderer struct {
	width  int // paper width in pixels
	height int // current canvas height
	ctx    *gg.Context
	y      float64 // current layout position
}

// New creates a renderer for the given paper width ("58mm", "80mm" or
// "112mm"; anything else defaults to 80mm).
func New(paperWidth string) *Renderer {
	width := paperWidthToPixels(paperWidth)

	initialHeight := 1000

	ctx := gg.NewContext(width, initialHeight)
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)

	return &Renderer{
		width:  width,
		height: initialHeight,
		ctx:    ctx,
		y:      0,
	}
}

// Render draws every enabled component in order and returns the image
// cropped to the content. Unknown component types and missing data
// are skipped, matching the other render paths.
func (r *Renderer) Render(t receipt.Template, data receipt.PreviewData) image.Image {
	for _, c := range receipt.EnabledInOrder(t) {
		r.renderComponent(c, t, data)
	}

	return r.cropToContent()
}

func (r *Renderer) renderComponent(c receipt.Component, t receipt.Template, data receipt.PreviewData) {
	resolved := receipt.ResolveStyle(c, t)

	switch c.Type {
	case receipt.TypeLogo:
		r.renderLogo(c, resolved, data)
	case receipt.TypeHeader, receipt.TypeText, receipt.TypeFooter:
		r.renderTextBlock(c, resolved, data)
	case receipt.TypeItemList:
		r.renderItemList(data)
	case receipt.TypeTotals:
		r.renderTotals(data)
	case receipt.TypeQRCode:
		r.renderQRCode(c, data)
	case receipt.TypeDivider:
		r.renderDivider()
	case receipt.TypeSpacer:
		r.renderSpacer(resolved)
	}
}

func (r *Renderer) renderDivider() {
	r.ensureHeight(15)

	y := r.y + 7
	margin := 10.0

	r.ctx.SetLineWidth(2)

	dashLength := 8.0
	gapLength := 4.0
	x := margin
	for x < float64(r.width)-margin {
		endX := x + dashLength
		if endX > float64(r.width)-margin {
			endX = float64(r.width) - margin
		}
		r.ctx.DrawLine(x, y, endX, y)
		r.ctx.Stroke()
		x += dashLength + gapLength
	}

	r.y += 15
}

func (r *Renderer) renderSpacer(s receipt.Resolved) {
	height := 20.0
	if px := parsePixels(s.Height); px > 0 {
		height = float64(px)
	}
	r.ensureHeight(int(height))
	r.y += height
}

func (r *Renderer) cropToContent() image.Image {
	finalHeight := int(r.y) + 30
	if finalHeight > r.height {
		finalHeight = r.height
	}

	img := r.ctx.Image()
	return img.(interface {
		SubImage(r image.Rectangle) image.Image
	}).SubImage(image.Rect(0, 0, r.width, finalHeight))
}

func (r *Renderer) ensureHeight(neededHeight int) {
	if int(r.y)+neededHeight <= r.height {
		return
	}

	newHeight := r.height * 2
	if newHeight < int(r.y)+neededHeight {
		newHeight = int(r.y) + neededHeight + 1000
	}

	newCtx := gg.NewContext(r.width, newHeight)
	newCtx.SetColor(color.White)
	newCtx.Clear()
	newCtx.DrawImage(r.ctx.Image(), 0, 0)
	newCtx.SetColor(color.Black)

	r.ctx = newCtx
	r.height = newHeight
}

func paperWidthToPixels(width string) int {
	switch width {
	case "58mm":
		return 384
	case "80mm":
		return 576
	case "112mm":
		return 832
	default:
		return 576
	}
}

// loadFont loads a usable font face at the requested size, falling
// back through common system font locations.
func (r *Renderer) loadFont(size float64) {
	systemFonts := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Courier New.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:\\Windows\\Fonts\\consola.ttf",
	}

	for _, font := range systemFonts {
		if _, err := os.Stat(font); err == nil {
			if err := r.ctx.LoadFontFace(font, size); err == nil {
				return
			}
		}
	}
	// gg falls back to its built-in face when none load
}

// parsePixels reads the leading digits of a CSS-like length.
func parsePixels(s string) int {
	n := 0
	seen := false
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
