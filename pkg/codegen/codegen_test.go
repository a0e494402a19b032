package codegen

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

func testConfig() project.Config {
	c := project.DefaultConfig()
	c.Columns, c.Rows = 3, 2
	c.ColumnWidths = []float64{1, 2, 1}
	c.RowHeights = []float64{1, 1}
	return c
}

func testItems() []project.Item {
	return []project.Item{
		{ID: "a", Name: "Header", Item: grid.Item{StartCol: 1, EndCol: 3, StartRow: 1, EndRow: 2}},
		{ID: "b", Item: grid.Item{StartCol: 3, EndCol: 4, StartRow: 1, EndRow: 3}},
	}
}

func TestHTML(t *testing.T) {
	want := `<div class="grid-container">
  <div class="item-1">Header</div>
  <div class="item-2">Item 2</div>
</div>`
	if got := HTML(testItems()); got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTMLEmpty(t *testing.T) {
	if got, want := HTML(nil), "<div class=\"grid-container\">\n\n</div>"; got != want {
		t.Errorf("HTML(nil) = %q, want %q", got, want)
	}
}

func TestHTMLEscapesNames(t *testing.T) {
	got := HTML([]project.Item{{Name: "Tom & Jerry"}})
	if !strings.Contains(got, "Tom &amp; Jerry") {
		t.Errorf("name not escaped: %s", got)
	}
}

func TestCSS(t *testing.T) {
	want := `.grid-container {
  display: grid;
  grid-template-columns: 1fr 2fr 1fr;
  grid-template-rows: 1fr 1fr;
  gap: 8px;
  padding: 16px;
  width: 100%;
  min-height: 400px;
}

.item-1 {
  grid-column: 1 / 3;
  grid-row: 1 / 2;
  background: #e2e8f0;
  border: 1px solid #cbd5e1;
  border-radius: 4px;
  padding: 1rem;
}

.item-2 {
  grid-column: 3 / 4;
  grid-row: 1 / 3;
  background: #e2e8f0;
  border: 1px solid #cbd5e1;
  border-radius: 4px;
  padding: 1rem;
}`
	if got := CSS(testConfig(), testItems()); got != want {
		t.Errorf("CSS() =\n%s\nwant\n%s", got, want)
	}
}

func TestCSSUnitsAndFractions(t *testing.T) {
	c := testConfig()
	c.ColumnWidths = []float64{1.5, 0.25, 1}
	c.Padding, c.PaddingUnit = 1.25, project.UnitRem
	c.ContainerWidth, c.ContainerWidthUnit = 960, project.UnitPx

	got := CSS(c, nil)
	for _, want := range []string{
		"grid-template-columns: 1.5fr 0.25fr 1fr;",
		"padding: 1.25rem;",
		"width: 960px;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CSS() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, ".item-") {
		t.Error("CSS() without items has item rules")
	}
}

func TestCSSFillsMissingWeights(t *testing.T) {
	c := testConfig()
	c.ColumnWidths = nil
	if got := CSS(c, nil); !strings.Contains(got, "grid-template-columns: 1fr 1fr 1fr;") {
		t.Errorf("CSS() = %s", got)
	}
}

func TestTailwind(t *testing.T) {
	want := `<div class="grid grid-cols-[1fr_2fr_1fr] grid-rows-[1fr_1fr] gap-[8px] p-[16px] w-[100%] min-h-[400px]">
  <div class="col-start-1 col-end-3 row-start-1 row-end-2 bg-slate-200 border border-slate-300 rounded p-4">Header</div>
  <div class="col-start-3 col-end-4 row-start-1 row-end-3 bg-slate-200 border border-slate-300 rounded p-4">Item 2</div>
</div>`
	if got := Tailwind(testConfig(), testItems()); got != want {
		t.Errorf("Tailwind() =\n%s\nwant\n%s", got, want)
	}
}

func TestFullHTML(t *testing.T) {
	got := FullHTML(testConfig(), testItems())
	for _, want := range []string{
		"<!DOCTYPE html>",
		"    .grid-container {",
		"      grid-column: 1 / 3;",
		`    <div class="item-1">Header</div>`,
		"</html>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FullHTML() missing %q", want)
		}
	}
}

func testTracks(t *testing.T) grid.Tracks {
	t.Helper()
	tr, err := grid.ComputeTracks(grid.Spec{
		ColumnWeights:   []float64{1, 2, 1},
		RowWeights:      []float64{1, 1},
		ItemGap:         16,
		Padding:         16,
		ContainerWidth:  400,
		ContainerHeight: 200,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestTemplates(t *testing.T) {
	got := TemplatesFor(testTracks(t), 16)
	want := Templates{Columns: "92px 184px 92px", Rows: "84px 84px", Gap: "16px"}
	if got != want {
		t.Errorf("TemplatesFor() = %+v, want %+v", got, want)
	}
}

func TestRoundedTemplates(t *testing.T) {
	tr, _ := grid.ComputeTracks(grid.Spec{
		ColumnWeights:   []float64{1, 1, 1},
		RowWeights:      []float64{1, 2},
		ContainerWidth:  100,
		ContainerHeight: 100,
	})
	got := RoundedTemplates(tr, 8)
	want := Templates{Columns: "33px 33px 33px", Rows: "33px 67px", Gap: "8px"}
	if got != want {
		t.Errorf("RoundedTemplates() = %+v, want %+v", got, want)
	}
}

func TestRoundPx(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{2.5, 3}, {2.49, 2}, {-2.5, -2}, {-2.51, -3}, {0, 0},
	}
	for _, tt := range tests {
		if got := roundPx(tt.in); got != tt.want {
			t.Errorf("roundPx(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOverlaySVG(t *testing.T) {
	cfg := testConfig()
	cfg.GapItems = 16
	items := []project.Item{
		{ID: "a", Name: "Main", Item: grid.Item{StartCol: 2, EndCol: 4, StartRow: 1, EndRow: 2}},
		{ID: "b", Locked: true, Item: grid.Item{StartCol: 1, EndCol: 2, StartRow: 2, EndRow: 3}},
	}

	out, err := OverlaySVG(testTracks(t), cfg, items, WithSelected("a"), WithLines(), WithLineNumbers(), WithTitle("Demo"))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("not an svg document:\n%s", svg)
	}
	if n := strings.Count(svg, `class="cell"`); n != 6 {
		t.Errorf("overlay cells = %d, want 6", n)
	}
	if n := strings.Count(svg, `class="line"`); n != 4+3 {
		t.Errorf("grid lines = %d, want 7", n)
	}
	for _, want := range []string{
		`viewBox="0 0 400.0 200.0"`,
		"<title>Demo</title>",
		`<rect class="item selected" x="116.00" y="24.00" width="260.00" height="68.00"`,
		`<rect class="item locked"`,
		`<rect class="cell" x="108" y="16" width="184" height="84"/>`,
		`<g id="item-a">`,
		"C: 2→4 | R: 1→2",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestOverlaySVGErrors(t *testing.T) {
	cfg := testConfig()
	outside := []project.Item{{ID: "x", Item: grid.Item{StartCol: 1, EndCol: 9, StartRow: 1, EndRow: 2}}}
	if _, err := OverlaySVG(testTracks(t), cfg, outside); !errors.Is(err, errors.ErrCodeInvalidItem) {
		t.Errorf("item outside grid: error = %v, want INVALID_ITEM", err)
	}
	if _, err := OverlaySVG(grid.Tracks{}, cfg, nil); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("empty tracks: error = %v, want INVALID_STATE", err)
	}
}

func TestOverlaySVGDegenerate(t *testing.T) {
	tr, err := grid.ComputeTracks(grid.Spec{
		ColumnWeights:   []float64{1, 1},
		RowWeights:      []float64{1},
		Padding:         30,
		ContainerWidth:  40,
		ContainerHeight: 40,
	})
	if err != nil {
		t.Fatal(err)
	}
	items := []project.Item{{ID: "a", Item: grid.Item{StartCol: 1, EndCol: 2, StartRow: 1, EndRow: 2}}}
	out, err := OverlaySVG(tr, testConfig(), items)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), `width="-`) || strings.Contains(string(out), `height="-`) {
		t.Errorf("negative sizes in degenerate overlay:\n%s", out)
	}
}
