package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sticker-backend/internal/capture"
	"sticker-backend/internal/label"
	"sticker-backend/internal/printing"
	"sticker-backend/internal/render"
)

// layoutFlags are shared by every command that draws labels.
func addLayoutFlags(cmd *cobra.Command) {
	d := label.DefaultForm()
	cmd.Flags().String("format", string(d.Format), "Barcode symbology (CODE128 or EAN13)")
	cmd.Flags().Int("copies", d.Copies, "Copies of each sticker")
	cmd.Flags().Float64("width", d.LabelWidthMM, "Label width in mm")
	cmd.Flags().Float64("height", d.LabelHeightMM, "Label height in mm")
	cmd.Flags().Float64("margin", d.MarginMM, "Gap between labels in mm")
	cmd.Flags().Float64("text-size", d.TextSize, "Text size in px")
	cmd.Flags().Bool("save", false, "Upload the stickers to the API")
	cmd.Flags().Bool("print", false, "Open the print document (after --save, only when something was saved)")
	cmd.Flags().String("png", "", "Write the first label as PNG to this path")
}

// applyLayoutFlags copies the layout flags onto f.
func applyLayoutFlags(cmd *cobra.Command, f label.Form) label.Form {
	format, _ := cmd.Flags().GetString("format")
	f.Format = formatFlag(format)
	f.Copies, _ = cmd.Flags().GetInt("copies")
	f.LabelWidthMM, _ = cmd.Flags().GetFloat64("width")
	f.LabelHeightMM, _ = cmd.Flags().GetFloat64("height")
	f.MarginMM, _ = cmd.Flags().GetFloat64("margin")
	f.TextSize, _ = cmd.Flags().GetFloat64("text-size")
	return f
}

// runSession writes the preview, saves and prints a generated session as
// the flags ask.
func runSession(cmd *cobra.Command, s label.Session) error {
	w := getWriter(cmd)
	insts := s.Instances()
	if len(insts) == 0 {
		return errors.New("no labels to capture")
	}
	layout := s.Form().Layout()
	r := render.New(layout)

	if path, _ := cmd.Flags().GetString("png"); path != "" {
		png, err := r.PNG(insts[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return err
		}
		w.Info("Preview written to %s", path)
	}

	save, _ := cmd.Flags().GetBool("save")
	doPrint, _ := cmd.Flags().GetBool("print")

	if save {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		batch := capture.Batch{Source: s.Source(), Instances: insts, Copies: s.Form().CopyCount()}
		res := capture.Run(ctx, batch, r, getClient(cmd))
		w.Println(renderMarkdown(BatchReport(len(capture.Targets(batch)), res)))
		for _, f := range res.Failures {
			w.Warn("%s failed for %s: %v", f.Kind, f.Barcode, f.Err)
		}
		if !res.OK() {
			return errors.New("no sticker was saved, nothing to print")
		}
	}

	if doPrint {
		return printInstances(w, r, layout, insts)
	}
	return nil
}

func printInstances(w *Writer, r *render.Renderer, layout label.Layout, insts []label.Instance) error {
	nodes, err := r.Nodes(insts)
	if err != nil {
		return err
	}
	doc, err := printing.Document(nodes, layout, printing.Options{AutoPrint: true})
	if err != nil {
		return err
	}
	out, err := printing.Print(&printing.Browser{Out: w.Stderr}, doc)
	if err != nil {
		return fmt.Errorf("print failed: %w", err)
	}
	if out.Fallback {
		w.Warn("%v, falling back to in-page print", out.Reason)
		return nil
	}
	w.Success("Sent %d labels to the print window", len(nodes))
	return nil
}
