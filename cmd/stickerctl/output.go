package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	humanize "github.com/dustin/go-humanize"

	"sticker-backend/internal/capture"
	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

// Writer prints command results to Stdout and diagnostics to Stderr.
type Writer struct {
	Quiet  bool
	Stdout io.Writer
	Stderr io.Writer
}

func NewWriter(quiet bool) *Writer {
	return &Writer{Quiet: quiet, Stdout: os.Stdout, Stderr: os.Stderr}
}

// colorsEnabled is false under NO_COLOR or a dumb terminal.
func colorsEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func styled(text string, style lipgloss.Style) string {
	if colorsEnabled() {
		return style.Render(text)
	}
	return text
}

var (
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func (w *Writer) Println(a ...any) {
	fmt.Fprintln(w.Stdout, a...)
}

func (w *Writer) Success(format string, args ...any) {
	fmt.Fprintln(w.Stdout, styled("✔ ", okStyle)+fmt.Sprintf(format, args...))
}

func (w *Writer) Info(format string, args ...any) {
	if w.Quiet {
		return
	}
	fmt.Fprintln(w.Stderr, styled(fmt.Sprintf(format, args...), dimStyle))
}

// Warn is printed even in quiet mode.
func (w *Writer) Warn(format string, args ...any) {
	fmt.Fprintf(w.Stderr, "%s %s\n", styled("Warning:", warnStyle), fmt.Sprintf(format, args...))
}

// Error prints err and returns the exit code.
func (w *Writer) Error(err error) int {
	fmt.Fprintf(w.Stderr, "%s %v\n", styled("Error:", errStyle), err)
	return 1
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})
}

func priceCell(p models.Product) string {
	if !p.Price.Valid {
		return "-"
	}
	return p.Price.Decimal.StringFixed(2)
}

func stickerPrice(r models.StickerRecord) string {
	if !r.Price.Valid {
		return "-"
	}
	return r.Price.Decimal.StringFixed(2)
}

func StickerTable(recs []models.StickerRecord) string {
	t := newTable("ID", "BARCODE", "TITLE", "SKU", "PRICE", "QTY", "SOURCE", "SAVED")
	for _, r := range recs {
		t.Row(
			fmt.Sprint(r.ID),
			r.Barcode,
			truncate(r.Title, 32),
			r.SKU,
			stickerPrice(r),
			fmt.Sprint(r.Quantity),
			string(r.Source),
			humanize.Time(r.CreatedAt),
		)
	}
	return t.Render()
}

func ProductTable(products []models.Product) string {
	t := newTable("ID", "BARCODE", "NAME", "CATEGORY", "PRICE", "STOCK", "UPDATED")
	for _, p := range products {
		t.Row(
			fmt.Sprint(p.ID),
			p.Barcode,
			truncate(p.Name, 32),
			p.Category,
			priceCell(p),
			humanize.Comma(int64(p.Stock)),
			humanize.Time(p.UpdatedAt),
		)
	}
	return t.Render()
}

func ItemTable(items []label.Item) string {
	t := newTable("#", "BARCODE", "TITLE", "SKU", "PRICE")
	for i, it := range items {
		t.Row(fmt.Sprint(i+1), it.Barcode, truncate(it.Title, 32), it.SKU, it.Price)
	}
	return t.Render()
}

func ProductDetail(p models.Product) string {
	dim := func(s string) string { return styled(s, dimStyle) }
	lines := []string{
		styled(p.Name, titleStyle),
		fmt.Sprintf("%s %s", dim("Barcode:"), p.Barcode),
		fmt.Sprintf("%s %s", dim("Price:"), priceCell(p)),
		fmt.Sprintf("%s %s", dim("Category:"), p.Category),
		fmt.Sprintf("%s %d", dim("Stock:"), p.Stock),
		fmt.Sprintf("%s %s", dim("Created:"), humanize.Time(p.CreatedAt)),
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	return strings.Join(lines, "\n")
}

// BatchReport summarises a capture run as markdown.
func BatchReport(total int, res capture.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Saved %d of %d stickers\n\n", len(res.URLs), total)
	if len(res.Uploaded) > 0 {
		b.WriteString("| Barcode | Title | Qty | Image |\n|---|---|---|---|\n")
		for i, m := range res.Uploaded {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", m.Barcode, m.Title, m.Quantity, res.URLs[i])
		}
		b.WriteString("\n")
	}
	if len(res.Failures) > 0 {
		b.WriteString("## Failures\n\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "- **%s** (%s): %v\n", f.Barcode, f.Kind, f.Err)
		}
	}
	return b.String()
}

// renderMarkdown renders for the terminal, or returns md as is without colors.
func renderMarkdown(md string) string {
	if !colorsEnabled() {
		return md
	}
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
