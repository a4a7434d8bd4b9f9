// Package render draws label instances as PNG images and as HTML nodes for
// the print document.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"sync"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

const (
	mmPerInch = 25.4
	cssDPI    = 96.0

	// Bar geometry in CSS px, as the preview draws it.
	moduleWidthPx = 2.0
	barHeightPx   = 40.0

	// Capture scale over CSS px.
	DefaultScale = 2.0
)

// Renderer draws labels of one layout. DPI is the raster resolution; zero
// means CSS resolution times DefaultScale.
type Renderer struct {
	Layout label.Layout
	DPI    float64
}

func New(layout label.Layout) *Renderer {
	return &Renderer{Layout: layout, DPI: cssDPI * DefaultScale}
}

func (r *Renderer) dpi() float64 {
	if r.DPI <= 0 {
		return cssDPI * DefaultScale
	}
	return r.DPI
}

// MMToPx converts millimetres to pixels at dpi.
func MMToPx(mm, dpi float64) int {
	return int(math.Round(mm / mmPerInch * dpi))
}

// scale is raster pixels per CSS pixel.
func (r *Renderer) scale() float64 {
	return r.dpi() / cssDPI
}

// Encode turns value into barcode modules. Rejections by the symbology
// encoder are returned as is; nothing is validated beforehand.
func Encode(value string, format models.BarcodeFormat) (barcode.Barcode, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch format {
	case models.FormatEAN13:
		bc, err = ean.Encode(value)
	default:
		bc, err = code128.Encode(value)
	}
	if err != nil {
		return nil, fmt.Errorf("drawing %s barcode %q: %w", formatName(format), value, err)
	}
	return bc, nil
}

func formatName(f models.BarcodeFormat) string {
	if f == "" {
		return string(models.FormatCode128)
	}
	return string(f)
}

// PNG rasterizes the whole label: border, text lines and bars.
func (r *Renderer) PNG(inst label.Instance) ([]byte, error) {
	bc, err := Encode(inst.Barcode, inst.Format)
	if err != nil {
		return nil, err
	}

	dpi := r.dpi()
	w, h := MMToPx(r.Layout.WidthMM, dpi), MMToPx(r.Layout.HeightMM, dpi)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("label size %.1fx%.1fmm is too small", r.Layout.WidthMM, r.Layout.HeightMM)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	border(img, int(math.Max(1, math.Round(r.scale()))))

	lines, err := r.layoutLines(inst, bc, w)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, l := range lines {
		total += l.height()
	}
	y := (h - total) / 2
	for _, l := range lines {
		l.draw(img, w, y)
		y += l.height()
	}

	return encodePNG(img)
}

// BarsPNG draws only the bars, as embedded in HTML nodes.
func (r *Renderer) BarsPNG(value string, format models.BarcodeFormat) ([]byte, error) {
	bc, err := Encode(value, format)
	if err != nil {
		return nil, err
	}
	s := r.scale()
	modules := bc.Bounds().Dx()
	mw := moduleWidthPx * s
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(float64(modules)*mw)), int(math.Round(barHeightPx*s))))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawBars(img, bc, 0, 0, mw, img.Bounds().Dy())
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func border(img *image.RGBA, width int) {
	b := img.Bounds()
	black := image.NewUniform(color.Black)
	draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+width), black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Min.X, b.Max.Y-width, b.Max.X, b.Max.Y), black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Max.Y), black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Max.X-width, b.Min.Y, b.Max.X, b.Max.Y), black, image.Point{}, draw.Src)
}

// drawBars paints the dark modules of bc starting at (x0, y0).
func drawBars(img *image.RGBA, bc barcode.Barcode, x0, y0 int, moduleWidth float64, height int) {
	black := image.NewUniform(color.Black)
	modules := bc.Bounds().Dx()
	for m := 0; m < modules; m++ {
		if !dark(bc.At(bc.Bounds().Min.X+m, bc.Bounds().Min.Y)) {
			continue
		}
		left := x0 + int(math.Round(float64(m)*moduleWidth))
		right := x0 + int(math.Round(float64(m+1)*moduleWidth))
		if right == left {
			right++
		}
		draw.Draw(img, image.Rect(left, y0, right, y0+height), black, image.Point{}, draw.Src)
	}
}

func dark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}

// line is one stacked block of the label.
type line interface {
	height() int
	draw(img *image.RGBA, width, top int)
}

type textLine struct {
	text      string
	face      font.Face
	marginTop int
	marginBot int
}

func (l textLine) height() int {
	return l.marginTop + int(math.Ceil(float64(l.face.Metrics().Height.Ceil())*1.2)) + l.marginBot
}

func (l textLine) draw(img *image.RGBA, width, top int) {
	m := l.face.Metrics()
	lineH := int(math.Ceil(float64(m.Height.Ceil()) * 1.2))
	baseline := top + l.marginTop + (lineH-m.Height.Ceil())/2 + m.Ascent.Ceil()
	adv := font.MeasureString(l.face, l.text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: l.face,
		Dot:  fixed.P((width-adv)/2, baseline),
	}
	d.DrawString(l.text)
}

type barLine struct {
	bc          barcode.Barcode
	moduleWidth float64
	barHeight   int
	margin      int
}

func (l barLine) height() int { return l.margin*2 + l.barHeight }

func (l barLine) draw(img *image.RGBA, width, top int) {
	total := int(math.Round(float64(l.bc.Bounds().Dx()) * l.moduleWidth))
	drawBars(img, l.bc, (width-total)/2, top+l.margin, l.moduleWidth, l.barHeight)
}

func (r *Renderer) layoutLines(inst label.Instance, bc barcode.Barcode, width int) ([]line, error) {
	s := r.scale()
	var title, sub font.Face
	if size := r.Layout.TextSizePx * s; size > 0 {
		var err error
		if title, err = face(size); err != nil {
			return nil, err
		}
		if sub, err = face(size * 0.9); err != nil {
			return nil, err
		}
	}
	gap := int(math.Round(3 * s))

	var lines []line
	if title != nil && inst.Title != "" {
		lines = append(lines, textLine{text: inst.Title, face: title, marginBot: gap})
	}
	if sub != nil && inst.SKU != "" {
		lines = append(lines, textLine{text: inst.SKU, face: sub, marginTop: gap})
	}

	// Bars keep their preview size unless the label is too narrow, then
	// shrink to 92% of the width.
	inner := float64(width) * 0.92
	mw := moduleWidthPx * s
	if modules := float64(bc.Bounds().Dx()); modules*mw > inner {
		mw = inner / modules
	}
	lines = append(lines, barLine{
		bc:          bc,
		moduleWidth: mw,
		barHeight:   int(math.Round(barHeightPx * s)),
		margin:      int(math.Round(6 * s)),
	})

	if sub != nil && inst.Price != "" {
		lines = append(lines, textLine{text: priceText(inst.Price), face: sub, marginTop: gap})
	}
	return lines, nil
}

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

func face(sizePx float64) (font.Face, error) {
	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	// At 72 DPI one point is one pixel.
	return opentype.NewFace(f, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
}

const rupee = "\u20b9"

// PriceText is the price line as shown to people.
func PriceText(price string) string {
	return rupee + price
}

// priceText falls back to "Rs." when the label font has no rupee glyph.
func priceText(price string) string {
	if f, err := boldFont(); err == nil {
		if idx, err := f.GlyphIndex(nil, '\u20b9'); err == nil && idx != 0 {
			return PriceText(price)
		}
	}
	return "Rs." + price
}
