package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"sticker-backend/internal/label"
)

var stickersCmd = &cobra.Command{
	Use:   "stickers",
	Short: "Saved stickers",
}

var stickersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved stickers, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if path, _ := cmd.Flags().GetString("csv"); path != "" {
			data, err := getClient(cmd).ExportStickersCSV(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			getWriter(cmd).Success("Exported to %s", path)
			return nil
		}

		recs, err := getClient(cmd).ListStickers(ctx)
		if err != nil {
			return err
		}
		w := getWriter(cmd)
		if len(recs) == 0 {
			w.Println(styled("No stickers saved yet.", dimStyle))
			return nil
		}
		w.Println(StickerTable(recs))
		return nil
	},
}

var stickersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved sticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := getClient(cmd).DeleteSticker(ctx, id); err != nil {
			return err
		}
		getWriter(cmd).Success("Sticker %d deleted", id)
		return nil
	},
}

var stickersPrintCmd = &cobra.Command{
	Use:   "print <barcode>...",
	Short: "Print saved stickers through a signed link",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		copies, _ := cmd.Flags().GetInt("copies")
		link, err := getClient(cmd).CreatePrintLink(ctx, args, label.DefaultLayout(), copies)
		if err != nil {
			return err
		}

		w := getWriter(cmd)
		if noOpen, _ := cmd.Flags().GetBool("no-open"); noOpen {
			w.Println(link.URL)
			return nil
		}
		if err := browser.OpenURL(link.URL); err != nil {
			w.Warn("could not open a browser: %v", err)
			w.Println(link.URL)
			return nil
		}
		w.Success("Opened print document")
		return nil
	},
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func init() {
	stickersListCmd.Flags().String("csv", "", "Write the list as CSV to this path")
	stickersPrintCmd.Flags().Int("copies", 0, "Copies of each sticker (0 = saved quantity)")
	stickersPrintCmd.Flags().Bool("no-open", false, "Print the link instead of opening it")
	stickersCmd.AddCommand(stickersListCmd, stickersDeleteCmd, stickersPrintCmd)
}
