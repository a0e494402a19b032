package codegen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/gridsmith/pkg/project"
)

// HTML returns the container markup with one div per item, classed item-1,
// item-2 and so on in item order.
func HTML(items []project.Item) string {
	var b strings.Builder
	b.WriteString(`<div class="grid-container">` + "\n")
	for i, it := range items {
		fmt.Fprintf(&b, `  <div class="item-%d">%s</div>`+"\n", i+1, escape(it.Label(i+1)))
	}
	if len(items) == 0 {
		b.WriteString("\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// CSS returns the stylesheet for HTML: an fr-based grid container and one
// placement rule per item.
func CSS(cfg project.Config, items []project.Item) string {
	cfg = cfg.Normalize()

	var b strings.Builder
	fmt.Fprintf(&b, `.grid-container {
  display: grid;
  grid-template-columns: %s;
  grid-template-rows: %s;
  gap: %spx;
  padding: %s%s;
  width: %s%s;
  min-height: 400px;
}
`, frTemplate(cfg.ColumnWidths, " "), frTemplate(cfg.RowHeights, " "),
		num(cfg.GapItems), num(cfg.Padding), cfg.PaddingUnit, num(cfg.ContainerWidth), cfg.ContainerWidthUnit)

	for i, it := range items {
		fmt.Fprintf(&b, `
.item-%d {
  grid-column: %d / %d;
  grid-row: %d / %d;
  background: #e2e8f0;
  border: 1px solid #cbd5e1;
  border-radius: 4px;
  padding: 1rem;
}
`, i+1, it.StartCol, it.EndCol, it.StartRow, it.EndRow)
	}
	return strings.TrimSpace(b.String())
}

// Tailwind returns self-contained markup using Tailwind utility classes,
// arbitrary values carrying the track templates and lengths.
func Tailwind(cfg project.Config, items []project.Item) string {
	cfg = cfg.Normalize()

	container := []string{
		"grid",
		"grid-cols-[" + frTemplate(cfg.ColumnWidths, "_") + "]",
		"grid-rows-[" + frTemplate(cfg.RowHeights, "_") + "]",
		"gap-[" + num(cfg.GapItems) + "px]",
		"p-[" + num(cfg.Padding) + string(cfg.PaddingUnit) + "]",
		"w-[" + num(cfg.ContainerWidth) + string(cfg.ContainerWidthUnit) + "]",
		"min-h-[400px]",
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"%s\">\n", strings.Join(container, " "))
	for i, it := range items {
		fmt.Fprintf(&b, "  <div class=\"col-start-%d col-end-%d row-start-%d row-end-%d bg-slate-200 border border-slate-300 rounded p-4\">%s</div>\n",
			it.StartCol, it.EndCol, it.StartRow, it.EndRow, escape(it.Label(i+1)))
	}
	b.WriteString("</div>")
	return b.String()
}

// FullHTML returns a standalone document embedding HTML and CSS.
func FullHTML(cfg project.Config, items []project.Item) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>CSS Grid Layout</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: system-ui, sans-serif; padding: 2rem; background: #f8fafc; }

%s
  </style>
</head>
<body>
%s
</body>
</html>
`, indent(CSS(cfg, items), "    "), indent(HTML(items), "  "))
}

func frTemplate(weights []float64, sep string) string {
	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = num(w) + "fr"
	}
	return strings.Join(parts, sep)
}

// num formats v in the shortest form that reads back exactly.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
