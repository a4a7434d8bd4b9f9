// Package sheet reads uploaded spreadsheets into header-keyed rows and guesses
// which columns hold the sticker fields.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format (use .xlsx or .csv)")

// Row is one imported record. Cells are addressed by column name; a column
// missing from the file reports ok=false.
type Row struct {
	cells map[string]string
}

func (r Row) Get(column string) (string, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Value returns the cell or "" when column is empty or absent.
func (r Row) Value(column string) string {
	if column == "" {
		return ""
	}
	return r.cells[column]
}

// NewRow builds a row from a column→value map. The map is copied.
func NewRow(cells map[string]string) Row {
	cp := make(map[string]string, len(cells))
	for k, v := range cells {
		cp[k] = v
	}
	return Row{cells: cp}
}

type Sheet struct {
	Headers []string
	Rows    []Row
}

// Import parses the first sheet of an .xlsx workbook or a .csv file. The first
// line is the header row; blank lines are skipped and short rows are filled
// with empty strings.
func Import(r io.Reader, filename string) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}

	var records [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(data)
	case ".csv":
		records, err = readCSV(data)
	case ".xls":
		return nil, ErrUnsupportedFormat
	default:
		// Sniff: xlsx is a zip archive.
		if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
			records, err = readWorkbook(data)
		} else {
			records, err = readCSV(data)
		}
	}
	if err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	records := [][]string{dec.Header()}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func fromRecords(records [][]string) *Sheet {
	s := &Sheet{Headers: []string{}, Rows: []Row{}}
	if len(records) == 0 {
		return s
	}

	width := 0
	for _, rec := range records {
		if n := len(rec); n > width {
			width = n
		}
	}
	names := headerNames(records[0], width)

	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		cells := make(map[string]string, width)
		for i, name := range names {
			if i < len(rec) {
				cells[name] = rec[i]
			} else {
				cells[name] = ""
			}
		}
		s.Rows = append(s.Rows, Row{cells: cells})
	}

	// A header-only sheet has no columns to offer.
	if len(s.Rows) > 0 {
		s.Headers = names
	}
	return s
}

// headerNames names every column: blank headers become __EMPTY, __EMPTY_1, ...
// and repeated names get a _1, _2 suffix.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(header) {
			base = strings.TrimSpace(header[i])
		}
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for n := 1; seen[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
