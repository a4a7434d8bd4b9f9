package main

import (
	"strings"

	"github.com/spf13/cobra"

	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate stickers from a single product",
	Example: `  stickerctl generate --title "Masala Tea" --price 45 --barcode 8901234567890 --format EAN13 --copies 10 --save --print
  stickerctl generate --barcode ABC-1 --no-price --png preview.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := label.DefaultForm()
		f.Title, _ = cmd.Flags().GetString("title")
		f.SKU, _ = cmd.Flags().GetString("sku")
		f.Price, _ = cmd.Flags().GetString("price")
		f.Barcode, _ = cmd.Flags().GetString("barcode")
		noPrice, _ := cmd.Flags().GetBool("no-price")
		noSKU, _ := cmd.Flags().GetBool("no-sku")
		f.IncludePrice = !noPrice
		f.IncludeSKU = !noSKU
		f = applyLayoutFlags(cmd, f)

		s, err := label.Update(label.NewSession(), label.SetForm{Form: f})
		if err != nil {
			return err
		}
		if s, err = label.Update(s, label.Generate{}); err != nil {
			return err
		}

		getWriter(cmd).Info("%d labels for %s", len(s.Instances()), f.Barcode)
		return runSession(cmd, s)
	},
}

func init() {
	d := label.DefaultForm()
	generateCmd.Flags().String("title", d.Title, "Product title")
	generateCmd.Flags().String("sku", d.SKU, "SKU line")
	generateCmd.Flags().String("price", d.Price, "Price line")
	generateCmd.Flags().String("barcode", d.Barcode, "Barcode value")
	generateCmd.Flags().Bool("no-price", false, "Leave the price off the label")
	generateCmd.Flags().Bool("no-sku", false, "Leave the SKU off the label")
	addLayoutFlags(generateCmd)
}

func formatFlag(v string) models.BarcodeFormat {
	return models.BarcodeFormat(strings.ToUpper(strings.TrimSpace(v)))
}
