package main

import (
	"errors"
	"strings"
	"testing"

	"sticker-backend/internal/capture"
	"sticker-backend/internal/models"
)

func TestBatchReport(t *testing.T) {
	res := capture.Result{
		URLs:     []string{"http://x/files/barcodes/111.png"},
		Uploaded: []capture.Meta{{Barcode: "111", Title: "Tea", Quantity: 3}},
		Failures: []capture.Failure{{Barcode: "222", Kind: capture.KindUpload, Err: errors.New("HTTP error: 400")}},
	}
	got := BatchReport(2, res)

	for _, want := range []string{
		"# Saved 1 of 2 stickers",
		"| 111 | Tea | 3 | http://x/files/barcodes/111.png |",
		"- **222** (upload): HTTP error: 400",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestStickerTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := StickerTable([]models.StickerRecord{{ID: 7, Barcode: "111", Title: "Tea", Quantity: 2, Source: models.SourceExcel}})
	for _, want := range []string{"BARCODE", "111", "Tea", "excel"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a very long product title", 10); got != "a very ..." {
		t.Errorf("truncate = %q, want %q", got, "a very ...")
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("12"); err != nil || id != 12 {
		t.Errorf("parseID(12) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-1", "abc"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) accepted", bad)
		}
	}
}
