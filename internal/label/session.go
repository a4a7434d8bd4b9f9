package label

import (
	"errors"
	"fmt"
	"slices"

	"sticker-backend/internal/models"
	"sticker-backend/internal/sheet"
)

var (
	ErrBarcodeUnmapped = errors.New("choose the barcode column before generating")
	ErrUnknownField    = errors.New("unknown sticker field")
	ErrUnknownColumn   = errors.New("column not in imported sheet")
)

// Session is the client's editing state. It is a value: Update never mutates
// its argument, so a previous Session can be kept and compared freely.
type Session struct {
	form      Form
	source    models.StickerSource
	headers   []string
	rows      []sheet.Row
	columns   sheet.ColumnMap
	generated bool
}

func NewSession() Session {
	return Session{form: DefaultForm(), source: models.SourceManual}
}

func (s Session) Form() Form                   { return s.form }
func (s Session) Source() models.StickerSource { return s.source }
func (s Session) Columns() sheet.ColumnMap     { return s.columns }
func (s Session) Generated() bool              { return s.generated }
func (s Session) Headers() []string            { return slices.Clone(s.headers) }
func (s Session) RowCount() int                { return len(s.rows) }

// Event is one user action.
type Event interface {
	apply(Session) (Session, error)
}

type SetForm struct{ Form Form }

type SetSource struct{ Source models.StickerSource }

// LoadSheet replaces any earlier import, switches to spreadsheet mode and
// guesses the column map.
type LoadSheet struct{ Sheet *sheet.Sheet }

type SetColumn struct{ Field, Column string }

// Generate marks the current input as ready to preview, save and print.
type Generate struct{}

// Update applies ev and returns the new state. Any event other than Generate
// clears the generated flag. On error s is returned unchanged.
func Update(s Session, ev Event) (Session, error) {
	next, err := ev.apply(s)
	if err != nil {
		return s, err
	}
	if _, ok := ev.(Generate); !ok {
		next.generated = false
	}
	return next, nil
}

func (e SetForm) apply(s Session) (Session, error) {
	s.form = e.Form
	return s, nil
}

func (e SetSource) apply(s Session) (Session, error) {
	if e.Source != models.SourceManual && e.Source != models.SourceExcel {
		return s, fmt.Errorf("unknown source %q", e.Source)
	}
	s.source = e.Source
	return s, nil
}

func (e LoadSheet) apply(s Session) (Session, error) {
	if e.Sheet == nil {
		return s, errors.New("no sheet to load")
	}
	s.headers = slices.Clone(e.Sheet.Headers)
	s.rows = slices.Clone(e.Sheet.Rows)
	s.columns = sheet.DetectColumns(s.headers)
	s.source = models.SourceExcel
	return s, nil
}

func (e SetColumn) apply(s Session) (Session, error) {
	if e.Column != "" && !slices.Contains(s.headers, e.Column) {
		return s, fmt.Errorf("%w: %q", ErrUnknownColumn, e.Column)
	}
	cm, ok := s.columns.With(e.Field, e.Column)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	s.columns = cm
	return s, nil
}

func (Generate) apply(s Session) (Session, error) {
	if s.source == models.SourceExcel && s.columns.Barcode == "" {
		return s, ErrBarcodeUnmapped
	}
	s.generated = true
	return s, nil
}

// Items is the normalized item list for the current source.
func (s Session) Items() []Item {
	if s.source == models.SourceExcel {
		return Items(s.rows, s.columns)
	}
	return []Item{ManualInstances(s.form)[0].Item}
}

// Instances returns the labels to preview. Nothing is returned until the
// session has been generated, so a stale preview can never be captured.
func (s Session) Instances() []Instance {
	if !s.generated {
		return nil
	}
	if s.source == models.SourceExcel {
		return SheetInstances(Items(s.rows, s.columns), s.form.CopyCount(), s.form.Format)
	}
	return ManualInstances(s.form)
}
