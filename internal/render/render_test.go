package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

func TestMMToPx(t *testing.T) {
	if got := MMToPx(25.4, 96); got != 96 {
		t.Errorf("MMToPx(25.4, 96) = %d, want 96", got)
	}
	if got := MMToPx(50, 192); got != 378 {
		t.Errorf("MMToPx(50, 192) = %d, want 378", got)
	}
}

func TestPNGSize(t *testing.T) {
	r := New(label.DefaultLayout())
	inst := label.ManualInstances(label.DefaultForm())[0]

	data, err := r.PNG(inst)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 378 || b.Dy() != 227 {
		t.Errorf("size = %dx%d, want 378x227", b.Dx(), b.Dy())
	}
	// Border pixel is black, centre column has bars somewhere.
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Errorf("corner pixel not black")
	}
}

func TestPNGNarrowLabelShrinksBars(t *testing.T) {
	r := New(label.Layout{WidthMM: 10, HeightMM: 10, TextSizePx: 0})
	inst := label.Instance{Item: label.Item{Barcode: "ABCDEFGHIJKLMNOP"}, Format: models.FormatCode128}
	if _, err := r.PNG(inst); err != nil {
		t.Fatalf("PNG: %v", err)
	}
}

func TestInvalidEAN13IsDrawingFailure(t *testing.T) {
	r := New(label.DefaultLayout())
	inst := label.Instance{Item: label.Item{Barcode: "not-digits"}, Format: models.FormatEAN13}

	if _, err := r.PNG(inst); err == nil {
		t.Fatal("PNG accepted a non-numeric EAN13 value")
	} else if !strings.Contains(err.Error(), "EAN13") {
		t.Errorf("error %q does not name the symbology", err)
	}
	if _, err := r.Node(inst); err == nil {
		t.Fatal("Node accepted a non-numeric EAN13 value")
	}
}

func TestValidEAN13(t *testing.T) {
	r := New(label.DefaultLayout())
	inst := label.Instance{Item: label.Item{Barcode: "590123412345"}, Format: models.FormatEAN13}
	if _, err := r.PNG(inst); err != nil {
		t.Fatalf("PNG: %v", err)
	}
}

func TestZeroSizeLabel(t *testing.T) {
	r := New(label.Layout{})
	inst := label.Instance{Item: label.Item{Barcode: "1"}}
	if _, err := r.PNG(inst); err == nil {
		t.Fatal("PNG drew a 0x0 label")
	}
}

func TestNodeMarkup(t *testing.T) {
	r := New(label.DefaultLayout())
	inst := label.Instance{Item: label.Item{Title: "Tea <b>", Price: "10", Barcode: "111"}}

	n, err := r.Node(inst)
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	html := string(n.HTML)
	for _, want := range []string{
		`class="label"`,
		`Tea &lt;b&gt;`,
		"\u20b910",
		`src="data:image/png;base64,`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("node markup missing %q:\n%s", want, html)
		}
	}
	if !strings.Contains(html, "label-sub\">\u20b9") {
		t.Errorf("price line not rendered as sub line")
	}
	if strings.Count(html, "label-sub") != 1 {
		t.Errorf("empty SKU rendered a line")
	}
}
