// Package printing assembles rendered label nodes into a standalone print
// document and hands it to the platform.
package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"sticker-backend/internal/label"
	"sticker-backend/internal/render"
)

var docTmpl = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Print Barcode Stickers</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { background: #fff; font-family: Arial, sans-serif; }
  .label-grid { display: flex; flex-wrap: wrap; gap: {{.Margin}}; padding: {{.Margin}}; }
  .label {
    width: {{.Width}}; height: {{.Height}};
    background: #fff; border: 1px solid #000;
    display: flex; align-items: center; justify-content: center;
    page-break-inside: avoid; flex-shrink: 0;
  }
  .label-inner { width: 92%; text-align: center; font-size: {{.TextSize}}; line-height: 1.2; }
  .label-title { font-weight: 700; margin-bottom: 3px; }
  .label-sub { font-weight: 600; margin-top: 3px; font-size: 0.9em; }
  .label-barcode { margin: 6px 0; }
  .label-barcode img { width: 100%; height: auto; }
  @media print {
    .label-grid { gap: 0; padding: 0; margin: 0; }
  }
</style>
</head>
<body>
<div class="label-grid">{{range .Nodes}}{{.HTML}}{{end}}</div>
{{if .AutoPrint}}<script>
  setTimeout(function () { window.print(); setTimeout(function () { window.close(); }, 500); }, 1200);
</script>{{end}}
</body>
</html>
`))

// Options tune the generated document.
type Options struct {
	// AutoPrint adds a script that opens the print dialog once loaded.
	AutoPrint bool
}

// Document wraps the given nodes, verbatim and in order, in a page whose
// label boxes are sized in millimetres.
func Document(nodes []render.Node, layout label.Layout, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	err := docTmpl.Execute(&buf, struct {
		Width, Height, Margin, TextSize template.CSS
		Nodes                           []render.Node
		AutoPrint                       bool
	}{
		Width:     mm(layout.WidthMM),
		Height:    mm(layout.HeightMM),
		Margin:    mm(layout.MarginMM),
		TextSize:  template.CSS(strconv.FormatFloat(layout.TextSizePx, 'f', -1, 64) + "px"),
		Nodes:     nodes,
		AutoPrint: opts.AutoPrint,
	})
	if err != nil {
		return nil, fmt.Errorf("building print document: %w", err)
	}
	return buf.Bytes(), nil
}

func mm(v float64) template.CSS {
	return template.CSS(strconv.FormatFloat(v, 'f', -1, 64) + "mm")
}
