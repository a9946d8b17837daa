package preview

import (
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"

	"github.com/receiptlab/receipt-designer/internal/layout"
	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/internal/vars"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// renderLogo draws the logo image when a data URL is present, scaled
// to the component width; otherwise it draws the store name in large
// bold text like the thermal path does.
func (r *Renderer) renderLogo(c receipt.Component, s receipt.Resolved, data receipt.PreviewData) {
	if img := decodeDataURL(c.Data.URL); img != nil {
		targetWidth := parsePixels(s.Width)
		if targetWidth <= 0 || targetWidth > r.width {
			targetWidth = r.width
		}
		if img.Bounds().Dx() != targetWidth {
			img = imaging.Resize(img, targetWidth, 0, imaging.Lanczos)
		}

		imgHeight := img.Bounds().Dy()
		r.ensureHeight(imgHeight + 10)

		x := (r.width - img.Bounds().Dx()) / 2
		r.ctx.DrawImage(img, x, int(r.y))
		r.y += float64(imgHeight) + 10
		return
	}

	text := c.Data.Text
	if text == "" {
		text = data.StoreName
	}

	r.drawLines([]string{vars.Expand(text, data)}, 28, "center")
	r.y += 10
}

// decodeDataURL decodes a base64 data URL into an image. Any failure
// returns nil so the caller falls back to text.
func decodeDataURL(url string) image.Image {
	if !strings.HasPrefix(url, "data:image/") {
		return nil
	}

	idx := strings.Index(url, "base64,")
	if idx < 0 {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(url[idx+len("base64,"):])
	if err != nil {
		return nil
	}

	img, _, err := image.Decode(strings.NewReader(string(raw)))
	if err != nil {
		return nil
	}

	return img
}

func (r *Renderer) renderTextBlock(c receipt.Component, s receipt.Resolved, data receipt.PreviewData) {
	text := vars.Expand(c.Data.Text, data)
	if text == "" {
		return
	}

	size := float64(parsePixels(s.FontSize))
	if size <= 0 {
		size = 12
	}
	// Screen pixels are too small on a 203dpi-equivalent canvas.
	size *= 2

	if c.Type == receipt.TypeHeader {
		size *= 1.2
	}

	r.drawLines(strings.Split(text, "\n"), size, s.Align)
}

func (r *Renderer) renderItemList(data receipt.PreviewData) {
	if len(data.Items) == 0 {
		return
	}

	lines := []string{layout.Separator(layout.PrintWidth, "-")}
	for _, item := range data.Items {
		total := printer.FormatAmount(item.Total)
		wrapped := layout.LineWrap(item.Name, layout.PrintWidth-len(total)-1)
		lines = append(lines, layout.Justify(wrapped[0], total, layout.PrintWidth))
		lines = append(lines, wrapped[1:]...)
	}
	lines = append(lines, layout.Separator(layout.PrintWidth, "-"))

	r.drawLines(lines, 20, "left")
}

func (r *Renderer) renderTotals(data receipt.PreviewData) {
	lines := []string{
		layout.Justify("Subtotal:", printer.FormatAmount(data.Subtotal), layout.PrintWidth),
	}
	if data.Discount > 0 {
		lines = append(lines,
			layout.Justify("Discount:", "-"+printer.FormatAmount(data.Discount), layout.PrintWidth))
	}
	lines = append(lines,
		layout.Justify("Tax:", printer.FormatAmount(data.Tax), layout.PrintWidth),
		layout.Separator(layout.PrintWidth, "="),
		layout.Justify("TOTAL:", printer.FormatAmount(data.Total), layout.PrintWidth),
		layout.Separator(layout.PrintWidth, "="),
	)

	r.drawLines(lines, 20, "left")
}

func (r *Renderer) renderQRCode(c receipt.Component, data receipt.PreviewData) {
	payload := c.Data.QRData
	if payload == "" {
		payload = c.Data.QRCodeData
	}
	if payload == "" {
		payload = data.QRCodeData
	}
	if payload == "" {
		return
	}

	qr, err := qrcode.New(vars.Expand(payload, data), qrcode.Medium)
	if err != nil {
		return
	}

	qrSize := r.width - 100
	if qrSize > 400 {
		qrSize = 400
	}

	qrImg := qr.Image(qrSize)
	imgHeight := qrImg.Bounds().Dy()
	r.ensureHeight(imgHeight + 20)

	x := (r.width - qrImg.Bounds().Dx()) / 2
	r.ctx.DrawImage(qrImg, x, int(r.y))
	r.y += float64(imgHeight) + 10
}

// drawLines lays out text lines with the given font size and
// alignment, advancing the layout position.
func (r *Renderer) drawLines(lines []string, size float64, align string) {
	r.loadFont(size)

	for _, line := range lines {
		textWidth, textHeight := r.ctx.MeasureString(line)

		var x float64
		switch align {
		case "center":
			x = float64(r.width)/2 - textWidth/2
		case "right":
			x = float64(r.width) - textWidth - 5
		default:
			x = 5
		}

		r.ensureHeight(int(textHeight) + 16)
		r.ctx.DrawString(line, x, r.y+textHeight)
		r.y += textHeight + 8
	}
}
