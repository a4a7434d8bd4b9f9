package printing

import (
	"errors"
	"fmt"
)

// ErrPopupBlocked reports that no print window could be opened and the
// document went to the in-page fallback instead.
var ErrPopupBlocked = errors.New("print window was blocked")

// WindowName is the name of the auxiliary print window.
const WindowName = "barcode-print"

// Window is an auxiliary print window.
type Window interface {
	Write(doc []byte) error
	Closed() bool
}

// Platform opens print windows. OpenWindow returns nil when the platform
// refuses to open one.
type Platform interface {
	OpenWindow(name string) Window
	PrintInPage(doc []byte) error
}

// Outcome describes how a document was printed.
type Outcome struct {
	// Fallback is set when the in-page path was used; Reason says why.
	Fallback bool
	Reason   error
}

// Print opens a window for doc. A missing or closed window, or one that
// fails to take the document, falls back to printing in page. Only a failing
// fallback is returned as an error.
func Print(p Platform, doc []byte) (Outcome, error) {
	w := p.OpenWindow(WindowName)
	if w == nil || w.Closed() {
		return fallback(p, doc, ErrPopupBlocked)
	}
	if err := w.Write(doc); err != nil {
		return fallback(p, doc, fmt.Errorf("%w: %v", ErrPopupBlocked, err))
	}
	return Outcome{}, nil
}

func fallback(p Platform, doc []byte, reason error) (Outcome, error) {
	out := Outcome{Fallback: true, Reason: reason}
	if err := p.PrintInPage(doc); err != nil {
		return out, fmt.Errorf("in-page print: %w", err)
	}
	return out, nil
}
