package printing

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
)

// Browser prints through the desktop web browser: the window is a temporary
// HTML file opened with the system handler.
type Browser struct {
	// Dir holds the temporary window files; "" means os.TempDir.
	Dir string
	// FallbackPath receives the document when no browser could be opened.
	FallbackPath string
	// Out gets the fallback instructions.
	Out io.Writer

	open func(path string) error
}

func (b *Browser) OpenWindow(name string) Window {
	f, err := os.CreateTemp(b.Dir, name+"-*.html")
	if err != nil {
		return nil
	}
	f.Close()
	open := b.open
	if open == nil {
		open = browser.OpenFile
	}
	return &fileWindow{path: f.Name(), open: open}
}

func (b *Browser) PrintInPage(doc []byte) error {
	path := b.FallbackPath
	if path == "" {
		path = "stickers-print.html"
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if b.Out != nil {
		abs, _ := filepath.Abs(path)
		fmt.Fprintf(b.Out, "Could not open a print window. Open %s and press Ctrl+P to print.\n", abs)
	}
	return nil
}

type fileWindow struct {
	path   string
	open   func(string) error
	closed bool
}

func (w *fileWindow) Write(doc []byte) error {
	if err := os.WriteFile(w.path, doc, 0o644); err != nil {
		w.closed = true
		return err
	}
	if err := w.open(w.path); err != nil {
		w.closed = true
		os.Remove(w.path)
		return err
	}
	return nil
}

func (w *fileWindow) Closed() bool { return w.closed }
