package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sticker-backend/internal/label"
	"sticker-backend/internal/sheet"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Generate stickers from a spreadsheet",
	Long: `Reads the first sheet of an .xlsx workbook or a .csv file. The first row is
the header. Columns are matched to sticker fields by name; use --map to pick
them by hand, e.g. --map barcode=UPC --map title="Item Name".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		sh, err := sheet.Import(f, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		s, err := label.Update(label.NewSession(), label.LoadSheet{Sheet: sh})
		if err != nil {
			return err
		}
		if s, err = label.Update(s, label.SetForm{Form: applyLayoutFlags(cmd, s.Form())}); err != nil {
			return err
		}

		mapping, _ := cmd.Flags().GetStringToString("map")
		fields := make([]string, 0, len(mapping))
		for field := range mapping {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			ev := label.SetColumn{Field: strings.ToLower(field), Column: mapping[field]}
			if s, err = label.Update(s, ev); err != nil {
				return fmt.Errorf("%w (columns: %s)", err, strings.Join(s.Headers(), ", "))
			}
		}

		cm := s.Columns()
		w.Info("%d rows, columns: title=%q sku=%q price=%q barcode=%q", s.RowCount(), cm.Title, cm.SKU, cm.Price, cm.Barcode)

		s, err = label.Update(s, label.Generate{})
		if errors.Is(err, label.ErrBarcodeUnmapped) {
			return fmt.Errorf("%w: pass --map barcode=<column> (columns: %s)", err, strings.Join(s.Headers(), ", "))
		}
		if err != nil {
			return err
		}

		items := s.Items()
		if skipped := s.RowCount() - len(items); skipped > 0 {
			w.Info("%d rows without a barcode skipped", skipped)
		}
		w.Println(ItemTable(items))
		return runSession(cmd, s)
	},
}

func init() {
	importCmd.Flags().StringToString("map", nil, "Column for a field (title, sku, price, barcode)")
	addLayoutFlags(importCmd)
}
