package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStickerKey(t *testing.T) {
	tests := map[string]string{
		"123456789012": "barcodes/123456789012.png",
		"AB-12_x":      "barcodes/AB-12_x.png",
		"a/b c.d":      "barcodes/a_b_c_d.png",
		"../../etc":    "barcodes/______etc.png",
	}
	for in, want := range tests {
		if got := StickerKey(in); got != want {
			t.Errorf("StickerKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDiskPutOverwrites(t *testing.T) {
	root := t.TempDir()
	d := NewDisk(root, "http://localhost:5000/")
	key := StickerKey("111")

	if err := d.Put(context.Background(), key, []byte("first"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := d.Put(context.Background(), key, []byte("second"), "image/png"); err != nil {
		t.Fatalf("Put again: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "barcodes", "111.png"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}
	if url := d.PublicURL(key); url != "http://localhost:5000/files/barcodes/111.png" {
		t.Errorf("PublicURL = %q", url)
	}
}

func TestDiskPutStaysInRoot(t *testing.T) {
	root := t.TempDir()
	d := NewDisk(root, "")
	if err := d.Put(context.Background(), "../escape.png", []byte("x"), "image/png"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.png")); err != nil {
		t.Errorf("object not kept under root: %v", err)
	}
}

func TestDiskPutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewDisk(t.TempDir(), "").Put(ctx, "a.png", nil, ""); err == nil {
		t.Error("Put ignored a cancelled context")
	}
}
