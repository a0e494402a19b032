package project

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

func sampleProject() Project {
	p := New()
	p.ID = "landing"
	p.Name = "Landing page"
	p.Config.Columns = 4
	p.Config.Rows = 3
	p.Config.ColumnWidths = []float64{1, 2, 2, 1}
	p.Config.RowHeights = []float64{1, 3, 1}
	p.Config.PaddingUnit = UnitRem
	p.Config.Padding = 1
	p.Items = []Item{
		{ID: "a", Name: "Header", Item: grid.Item{StartCol: 1, EndCol: 5, StartRow: 1, EndRow: 2}},
		{ID: "b", Name: "Body", Locked: true, Item: grid.Item{StartCol: 2, EndCol: 4, StartRow: 2, EndRow: 3}},
	}
	p.SelectedID = "b"
	return p
}

func TestFileRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "project"+ext)
			want := sampleProject()
			if err := WriteFile(want, path); err != nil {
				t.Fatal(err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
			}
		})
	}
}

func TestReadLegacyJSON(t *testing.T) {
	// Documents saved by the browser editor lack weights and item names.
	doc := `{
  "version": "1.0",
  "config": {"columns": 3, "rows": 2, "gap": 8, "gapUnit": "px", "gapItems": 8,
             "padding": 16, "paddingUnit": "px", "containerWidth": 100, "containerWidthUnit": "%"},
  "items": [{"id": "x1", "startCol": 1, "endCol": 3, "startRow": 1, "endRow": 2}],
  "currentBreakpoint": "base"
}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 1, 1}; !reflect.DeepEqual(p.Config.ColumnWidths, want) {
		t.Errorf("column widths = %v, want %v", p.Config.ColumnWidths, want)
	}
	if len(p.Items) != 1 || p.Items[0].EndCol != 3 || p.Items[0].Label(1) != "Item 1" {
		t.Errorf("items = %+v", p.Items)
	}
}

func TestTOMLLayout(t *testing.T) {
	data, err := Marshal(sampleProject(), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{"[config]", "[[items]]", "start_col = 1", `padding_unit = "rem"`} {
		if !strings.Contains(s, want) {
			t.Errorf("TOML output missing %q:\n%s", want, s)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"dir/B.TOML", FormatTOML, false},
		{"a.yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("FormatFromPath(%q) error code = %s", tt.path, errors.CodeOf(err))
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"malformed", `{"config":`, errors.ErrCodeInvalidProject},
		{"zero columns", `{"config":{"columns":0,"rows":2}}`, errors.ErrCodeInvalidProject},
		{"duplicate ids", `{"config":{"columns":2,"rows":2},"items":[
			{"id":"a","startCol":1,"endCol":2,"startRow":1,"endRow":2},
			{"id":"a","startCol":2,"endCol":3,"startRow":1,"endRow":2}]}`, errors.ErrCodeInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data), FormatJSON)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Unmarshal([]byte("{}"), Format("yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: error = %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil || !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok || u.Unwrap() == nil {
			return err
		}
		err = u.Unwrap()
	}
}
