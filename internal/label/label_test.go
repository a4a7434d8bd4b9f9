package label

import (
	"errors"
	"testing"

	"sticker-backend/internal/models"
	"sticker-backend/internal/sheet"
)

func TestManualInstancesCopies(t *testing.T) {
	f := DefaultForm()
	f.Copies = 3

	got := ManualInstances(f)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, inst := range got {
		if inst != got[0] {
			t.Errorf("instance %d = %+v, differs from first %+v", i, inst, got[0])
		}
	}
	if got[0].SKU != "SKU-001" || got[0].Price != "9.99" {
		t.Errorf("included fields missing: %+v", got[0])
	}
}

func TestManualInstancesRespectIncludeFlags(t *testing.T) {
	f := DefaultForm()
	f.IncludeSKU = false
	f.IncludePrice = false
	f.Copies = 0

	got := ManualInstances(f)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (copies floor)", len(got))
	}
	if got[0].SKU != "" || got[0].Price != "" {
		t.Errorf("excluded fields present: %+v", got[0])
	}
	if got[0].Title != "Product Name" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func rows(cells ...map[string]string) []sheet.Row {
	out := make([]sheet.Row, len(cells))
	for i, c := range cells {
		out[i] = sheet.NewRow(c)
	}
	return out
}

func TestSheetInstancesSkipRowsWithoutBarcode(t *testing.T) {
	rs := rows(
		map[string]string{"name": "Tea", "barcode": "111"},
		map[string]string{"name": "Coffee", "barcode": "   "},
	)
	items := Items(rs, sheet.ColumnMap{Title: "name", Barcode: "barcode"})
	got := SheetInstances(items, 2, models.FormatCode128)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, inst := range got {
		if inst.Barcode != "111" || inst.Title != "Tea" || inst.Source != models.SourceExcel {
			t.Errorf("unexpected instance %+v", inst)
		}
	}
}

func TestSheetInstancesGroupedByRow(t *testing.T) {
	rs := rows(
		map[string]string{"barcode": "1"},
		map[string]string{"barcode": "2"},
	)
	got := SheetInstances(Items(rs, sheet.ColumnMap{Barcode: "barcode"}), 3, models.FormatCode128)

	want := []string{"1", "1", "1", "2", "2", "2"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Barcode != w {
			t.Errorf("got[%d].Barcode = %q, want %q", i, got[i].Barcode, w)
		}
	}
	if got[3].Row != 1 {
		t.Errorf("got[3].Row = %d, want 1", got[3].Row)
	}
}

func TestItemsOnlyMappedFields(t *testing.T) {
	rs := rows(map[string]string{"name": "Tea", "sku": "T1", "mrp": "10", "ean": "5"})
	items := Items(rs, sheet.ColumnMap{Barcode: "ean", Price: "mrp"})
	if len(items) != 1 {
		t.Fatalf("len = %d", len(items))
	}
	want := Item{Price: "10", Barcode: "5"}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}
}

func TestSessionGenerateFlag(t *testing.T) {
	s := NewSession()
	if s.Instances() != nil {
		t.Fatal("fresh session has instances before Generate")
	}

	s, err := Update(s, Generate{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := len(s.Instances()); n != 1 {
		t.Fatalf("instances = %d, want 1", n)
	}

	f := s.Form()
	f.Copies = 4
	edited, err := Update(s, SetForm{Form: f})
	if err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	if edited.Generated() || edited.Instances() != nil {
		t.Error("editing the form kept the generated flag")
	}
	// The previous value is untouched.
	if !s.Generated() || s.Form().Copies != 1 {
		t.Error("Update mutated the previous session")
	}
}

func TestSessionSheetFlow(t *testing.T) {
	sh := &sheet.Sheet{
		Headers: []string{"Title", "UPC"},
		Rows: rows(
			map[string]string{"Title": "Tea", "UPC": "111"},
			map[string]string{"Title": "Jam", "UPC": ""},
		),
	}

	s, err := Update(NewSession(), LoadSheet{Sheet: sh})
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if s.Source() != models.SourceExcel {
		t.Fatalf("source = %q, want excel", s.Source())
	}
	if s.Columns().Barcode != "" {
		t.Fatalf("UPC auto-mapped to barcode")
	}

	if _, err := Update(s, Generate{}); !errors.Is(err, ErrBarcodeUnmapped) {
		t.Fatalf("Generate without barcode column: err = %v", err)
	}

	if _, err := Update(s, SetColumn{Field: "barcode", Column: "SKU"}); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("SetColumn unknown column: err = %v", err)
	}
	if _, err := Update(s, SetColumn{Field: "colour", Column: "UPC"}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetColumn unknown field: err = %v", err)
	}

	s, err = Update(s, SetColumn{Field: "barcode", Column: "UPC"})
	if err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	f := s.Form()
	f.Copies = 2
	if s, err = Update(s, SetForm{Form: f}); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	if s, err = Update(s, Generate{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got := s.Instances()
	if len(got) != 2 {
		t.Fatalf("instances = %d, want 2", len(got))
	}
	if got[0].Title != "Tea" {
		t.Errorf("title = %q, want Tea", got[0].Title)
	}
}

func TestSessionReimportReplaces(t *testing.T) {
	first := &sheet.Sheet{Headers: []string{"barcode"}, Rows: rows(map[string]string{"barcode": "1"})}
	second := &sheet.Sheet{Headers: []string{"ean", "name"}, Rows: rows(
		map[string]string{"ean": "7", "name": "a"},
		map[string]string{"ean": "8", "name": "b"},
	)}

	s, _ := Update(NewSession(), LoadSheet{Sheet: first})
	s, _ = Update(s, LoadSheet{Sheet: second})

	if s.RowCount() != 2 {
		t.Errorf("rows = %d, want 2", s.RowCount())
	}
	if want := (sheet.ColumnMap{Title: "name", Barcode: "ean"}); s.Columns() != want {
		t.Errorf("columns = %+v, want %+v", s.Columns(), want)
	}
}
