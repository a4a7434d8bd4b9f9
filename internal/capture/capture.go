// Package capture rasterizes generated labels and uploads one image per
// unique sticker together with its metadata.
package capture

import (
	"context"
	"fmt"

	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

// Rasterizer turns a label into PNG bytes.
type Rasterizer interface {
	PNG(inst label.Instance) ([]byte, error)
}

// Meta is the sticker metadata sent with an image.
type Meta struct {
	Title    string
	SKU      string
	Price    string
	Barcode  string
	Format   models.BarcodeFormat
	Source   models.StickerSource
	Quantity int
}

// Uploader stores an image with its metadata and returns the image's public
// URL.
type Uploader interface {
	UploadImage(ctx context.Context, png []byte, meta Meta) (string, error)
}

type FailureKind string

const (
	KindRasterize FailureKind = "rasterize"
	KindUpload    FailureKind = "upload"
)

// Failure is one sticker that did not make it to the store.
type Failure struct {
	Barcode string
	Kind    FailureKind
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Kind, f.Barcode, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Batch is one save request: the generated instances and the copy count
// recorded as each sticker's quantity.
type Batch struct {
	Source    models.StickerSource
	Instances []label.Instance
	Copies    int
}

// Result lists uploaded image URLs in upload order, plus every failure.
type Result struct {
	URLs     []string
	Uploaded []Meta
	Failures []Failure
}

// OK reports whether anything was stored; callers print only then.
func (r Result) OK() bool { return len(r.URLs) > 0 }

// Targets picks the instances a batch captures. Manual batches capture the
// first instance only. Sheet batches capture the first instance of every
// barcode, in order.
func Targets(b Batch) []label.Instance {
	if len(b.Instances) == 0 {
		return nil
	}
	if b.Source != models.SourceExcel {
		return b.Instances[:1]
	}
	seen := make(map[string]struct{}, len(b.Instances))
	var out []label.Instance
	for _, inst := range b.Instances {
		if inst.Barcode == "" {
			continue
		}
		if _, ok := seen[inst.Barcode]; ok {
			continue
		}
		seen[inst.Barcode] = struct{}{}
		out = append(out, inst)
	}
	return out
}

// Run captures and uploads the batch one sticker at a time. A failing
// sticker is recorded and the rest of the batch continues; each barcode is
// attempted once. Run stops early only when ctx is done.
func Run(ctx context.Context, b Batch, r Rasterizer, u Uploader) Result {
	quantity := max(b.Copies, 1)
	var res Result

	for _, inst := range Targets(b) {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, Failure{Barcode: inst.Barcode, Kind: KindUpload, Err: err})
			continue
		}

		png, err := r.PNG(inst)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Barcode: inst.Barcode, Kind: KindRasterize, Err: err})
			continue
		}

		meta := Meta{
			Title:    inst.Title,
			SKU:      inst.SKU,
			Price:    inst.Price,
			Barcode:  inst.Barcode,
			Format:   inst.Format,
			Source:   b.Source,
			Quantity: quantity,
		}
		url, err := u.UploadImage(ctx, png, meta)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Barcode: inst.Barcode, Kind: KindUpload, Err: err})
			continue
		}
		res.URLs = append(res.URLs, url)
		res.Uploaded = append(res.Uploaded, meta)
	}
	return res
}
