package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Bucket stores objects and hands out their public URLs. Put overwrites an
// existing object with the same key.
type Bucket interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// FilesPrefix is the route the server mounts a Disk bucket on.
const FilesPrefix = "/files"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// StickerKey is the object key of a sticker image.
func StickerKey(barcode string) string {
	return "barcodes/" + unsafeChars.ReplaceAllString(barcode, "_") + ".png"
}

// Disk keeps objects under Root and serves them from BaseURL+FilesPrefix.
type Disk struct {
	Root    string
	BaseURL string
}

func NewDisk(root, baseURL string) *Disk {
	return &Disk{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (d *Disk) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", errors.New("empty object key")
	}
	return filepath.Join(d.Root, filepath.FromSlash(clean)), nil
}

func (d *Disk) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("could not create folder: %w", err)
	}

	// Write to a sibling file and rename so readers never see half an image.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not store image: %w", err)
	}
	return nil
}

func (d *Disk) PublicURL(key string) string {
	return d.BaseURL + FilesPrefix + "/" + strings.TrimLeft(key, "/")
}
