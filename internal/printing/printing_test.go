package printing

import (
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sticker-backend/internal/label"
	"sticker-backend/internal/render"
)

type fakeWindow struct {
	closed   bool
	writeErr error
	got      []byte
}

func (w *fakeWindow) Write(doc []byte) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	w.got = doc
	return nil
}

func (w *fakeWindow) Closed() bool { return w.closed }

type fakePlatform struct {
	window  Window
	inPage  [][]byte
	pageErr error
}

func (p *fakePlatform) OpenWindow(string) Window { return p.window }

func (p *fakePlatform) PrintInPage(doc []byte) error {
	p.inPage = append(p.inPage, doc)
	return p.pageErr
}

func TestPrintUsesWindow(t *testing.T) {
	w := &fakeWindow{}
	p := &fakePlatform{window: w}

	out, err := Print(p, []byte("doc"))
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if out.Fallback {
		t.Error("fallback used with an open window")
	}
	if string(w.got) != "doc" || len(p.inPage) != 0 {
		t.Errorf("window got %q, in-page calls %d", w.got, len(p.inPage))
	}
}

func TestPrintFallsBackWhenBlocked(t *testing.T) {
	tests := []struct {
		name   string
		window Window
	}{
		{"no window", nil},
		{"closed window", &fakeWindow{closed: true}},
		{"write fails", &fakeWindow{writeErr: errors.New("denied")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlatform{window: tt.window}
			out, err := Print(p, []byte("doc"))
			if err != nil {
				t.Fatalf("Print: %v", err)
			}
			if !out.Fallback || !errors.Is(out.Reason, ErrPopupBlocked) {
				t.Errorf("outcome = %+v, want fallback with ErrPopupBlocked", out)
			}
			if len(p.inPage) != 1 {
				t.Errorf("in-page calls = %d, want 1", len(p.inPage))
			}
		})
	}
}

func TestPrintFallbackFailure(t *testing.T) {
	p := &fakePlatform{pageErr: errors.New("disk full")}
	if _, err := Print(p, []byte("doc")); err == nil {
		t.Fatal("expected error when the fallback fails")
	}
}

func TestDocumentSizesInMillimetres(t *testing.T) {
	nodes := []render.Node{
		{Barcode: "1", HTML: template.HTML(`<div class="label">one</div>`)},
		{Barcode: "2", HTML: template.HTML(`<div class="label">two</div>`)},
	}
	doc, err := Document(nodes, label.Layout{WidthMM: 50, HeightMM: 30, MarginMM: 3, TextSizePx: 12}, Options{AutoPrint: true})
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	s := string(doc)
	for _, want := range []string{
		"width: 50mm", "height: 30mm", "gap: 3mm", "font-size: 12px",
		`<div class="label">one</div><div class="label">two</div>`,
		"window.print()",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestBrowserFallbackWritesFile(t *testing.T) {
	dir := t.TempDir()
	var out strings.Builder
	b := &Browser{
		Dir:          dir,
		FallbackPath: filepath.Join(dir, "print.html"),
		Out:          &out,
		open:         func(string) error { return errors.New("no browser") },
	}

	res, err := Print(b, []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !res.Fallback {
		t.Fatal("expected fallback when the browser cannot open")
	}
	got, err := os.ReadFile(b.FallbackPath)
	if err != nil || string(got) != "<html></html>" {
		t.Fatalf("fallback file = %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "Ctrl+P") {
		t.Errorf("fallback instructions = %q", out.String())
	}
}

func TestBrowserOpensWindowFile(t *testing.T) {
	var opened string
	b := &Browser{Dir: t.TempDir(), open: func(p string) error { opened = p; return nil }}

	res, err := Print(b, []byte("doc"))
	if err != nil || res.Fallback {
		t.Fatalf("Print = %+v, %v", res, err)
	}
	got, err := os.ReadFile(opened)
	if err != nil || string(got) != "doc" {
		t.Errorf("window file = %q, %v", got, err)
	}
}

func TestSignerRoundTrip(t *testing.T) {
	s := NewSigner(strings.Repeat("k", 32), time.Hour)
	token, err := s.Sign(Job{Barcodes: []string{"111", "222"}, Layout: label.DefaultLayout(), Copies: 2})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	job, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(job.Barcodes) != 2 || job.Barcodes[1] != "222" || job.Copies != 2 || job.ID == "" {
		t.Errorf("job = %+v", job)
	}
	if job.Layout != label.DefaultLayout() {
		t.Errorf("layout = %+v", job.Layout)
	}
}

func TestSignerRejects(t *testing.T) {
	s := NewSigner(strings.Repeat("k", 32), time.Hour)
	token, err := s.Sign(Job{Barcodes: []string{"111"}})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	other := NewSigner(strings.Repeat("x", 32), time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidLink) {
		t.Errorf("wrong key: err = %v", err)
	}

	tampered := token[:len(token)-2] + "AA"
	if tampered == token {
		tampered = token[:len(token)-2] + "BB"
	}
	if _, err := s.Parse(tampered); !errors.Is(err, ErrInvalidLink) {
		t.Errorf("tampered: err = %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := s.Parse(token); !errors.Is(err, ErrInvalidLink) {
		t.Errorf("expired: err = %v", err)
	}

	if _, err := s.Sign(Job{}); err == nil {
		t.Error("Sign accepted a job without barcodes")
	}
}
