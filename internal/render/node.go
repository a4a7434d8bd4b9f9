package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"sticker-backend/internal/label"
)

// Node is the HTML markup of one rendered label.
type Node struct {
	Barcode string
	HTML    template.HTML
}

var nodeTmpl = template.Must(template.New("label").Parse(
	`<div class="label" data-barcode="{{.Barcode}}"><div class="label-inner">` +
		`{{if .Title}}<div class="label-title">{{.Title}}</div>{{end}}` +
		`{{if .SKU}}<div class="label-sub">{{.SKU}}</div>{{end}}` +
		`<div class="label-barcode"><img alt="{{.Barcode}}" src="{{.Bars}}"></div>` +
		`{{if .Price}}<div class="label-sub">{{.Price}}</div>{{end}}` +
		`</div></div>`))

// Node renders inst as label markup with the bars embedded as a PNG data URL.
func (r *Renderer) Node(inst label.Instance) (Node, error) {
	bars, err := r.BarsPNG(inst.Barcode, inst.Format)
	if err != nil {
		return Node{}, err
	}

	price := ""
	if inst.Price != "" {
		price = PriceText(inst.Price)
	}

	var buf bytes.Buffer
	err = nodeTmpl.Execute(&buf, struct {
		Title, SKU, Price, Barcode string
		Bars                       template.URL
	}{
		Title:   inst.Title,
		SKU:     inst.SKU,
		Price:   price,
		Barcode: inst.Barcode,
		Bars:    template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(bars)),
	})
	if err != nil {
		return Node{}, fmt.Errorf("rendering label node: %w", err)
	}
	return Node{Barcode: inst.Barcode, HTML: template.HTML(buf.String())}, nil
}

// Nodes renders every instance in order. The first drawing failure stops the
// run and names the offending label.
func (r *Renderer) Nodes(insts []label.Instance) ([]Node, error) {
	nodes := make([]Node, 0, len(insts))
	for i, inst := range insts {
		n, err := r.Node(inst)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
