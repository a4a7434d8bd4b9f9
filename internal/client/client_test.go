package client

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"sticker-backend/internal/capture"
	"sticker-backend/internal/config"
	"sticker-backend/internal/database/dbtest"
	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
	"sticker-backend/internal/printing"
	"sticker-backend/internal/render"
	"sticker-backend/internal/server"
	"sticker-backend/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	dbtest.UseMemory(t)

	srv := httptest.NewUnstartedServer(nil)
	base := "http://" + srv.Listener.Addr().String()
	cfg := &config.Config{CORSOrigins: "*", PublicBaseURL: base}
	root := t.TempDir()
	app := server.NewApp(cfg, server.Deps{
		Bucket:    storage.NewDisk(root, base),
		FilesRoot: root,
		Signer:    printing.NewSigner(strings.Repeat("k", 32), time.Hour),
	})
	srv.Config.Handler = adaptor.FiberApp(app)
	srv.Start()
	t.Cleanup(srv.Close)

	return New(base+"/api", 5*time.Second)
}

func ptr[T any](v T) *T { return &v }

func TestProducts(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	p, err := c.CreateProduct(ctx, ProductInput{Name: ptr("Widget"), Barcode: ptr("111"), Price: ptr("₹5")})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID == 0 || !p.Price.Valid || p.Price.Decimal.String() != "5" {
		t.Errorf("created = %+v", p)
	}

	got, err := c.GetProductByBarcode(ctx, "111")
	if err != nil || got.ID != p.ID {
		t.Fatalf("GetProductByBarcode = %+v, %v", got, err)
	}

	upd, err := c.UpdateProduct(ctx, p.ID, ProductInput{Stock: ptr(7)})
	if err != nil || upd.Stock != 7 || upd.Name != "Widget" {
		t.Fatalf("UpdateProduct = %+v, %v", upd, err)
	}

	if err := c.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := c.GetProduct(ctx, p.ID); !IsNotFound(err) {
		t.Errorf("GetProduct after delete err = %v, want not found", err)
	}

	_, err = c.CreateProduct(ctx, ProductInput{Name: ptr("No barcode")})
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != 400 || apiErr.Message != "Name and barcode are required" {
		t.Errorf("create without barcode err = %v", err)
	}
}

func TestStickers(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	rec, err := c.SaveSticker(ctx, StickerInput{Title: "Tea", Barcode: "123", Price: "9.99", Format: models.FormatCode128, Source: models.SourceManual, Quantity: 2})
	if err != nil {
		t.Fatalf("SaveSticker: %v", err)
	}
	if rec.Quantity != 2 {
		t.Errorf("quantity = %d", rec.Quantity)
	}

	list, err := c.ListStickers(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListStickers = %v, %v", list, err)
	}

	csv, err := c.ExportStickersCSV(ctx)
	if err != nil || !strings.Contains(string(csv), "Tea") {
		t.Errorf("export = %q, %v", csv, err)
	}

	if err := c.DeleteSticker(ctx, rec.ID); err != nil {
		t.Fatalf("DeleteSticker: %v", err)
	}
	if list, _ := c.ListStickers(ctx); len(list) != 0 {
		t.Errorf("%d stickers after delete", len(list))
	}
}

func TestCaptureRunAgainstServer(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	items := []label.Item{{Title: "Tea", Price: "45", Barcode: "111"}, {Title: "Rice", Barcode: "222"}}
	batch := capture.Batch{
		Source:    models.SourceExcel,
		Instances: label.SheetInstances(items, 3, models.FormatCode128),
		Copies:    3,
	}

	res := capture.Run(ctx, batch, render.New(label.DefaultLayout()), c)
	if len(res.Failures) != 0 {
		t.Fatalf("failures: %v", res.Failures)
	}
	if len(res.URLs) != 2 || !strings.HasSuffix(res.URLs[0], "/files/barcodes/111.png") {
		t.Errorf("urls = %v", res.URLs)
	}

	list, err := c.ListStickers(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListStickers = %v, %v", list, err)
	}
	for _, rec := range list {
		if rec.Quantity != 3 || rec.Source != models.SourceExcel || rec.ImageURL == nil {
			t.Errorf("stored %+v", rec)
		}
	}

	link, err := c.CreatePrintLink(ctx, []string{"111", "222"}, label.DefaultLayout(), 1)
	if err != nil || link.Token == "" {
		t.Fatalf("CreatePrintLink = %+v, %v", link, err)
	}
}
