package codegen

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/project"
)

func testProject() project.Project {
	p := project.New()
	p.Name = "Test"
	p.Config = testConfig()
	p.Items = testItems()
	return p
}

func TestGenerateAllFormats(t *testing.T) {
	wants := map[Format]string{
		FormatHTML:     `<div class="grid-container">`,
		FormatCSS:      "grid-template-columns: 1fr 2fr 1fr;",
		FormatTailwind: "grid-cols-[1fr_2fr_1fr]",
		FormatFull:     "<!DOCTYPE html>",
		FormatSVG:      "<title>Test</title>",
	}
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			out, err := Generate(f, testProject(), project.Viewport{})
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(out), wants[f]) {
				t.Errorf("output missing %q:\n%s", wants[f], out)
			}
		})
	}
}

func TestGenerateSVGUsesViewport(t *testing.T) {
	out, err := Generate(FormatSVG, testProject(), project.Viewport{Width: 1200, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `viewBox="0 0 1200.0 300.0"`) {
		t.Errorf("viewport ignored:\n%s", out)
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(Format("pdf"), testProject(), project.Viewport{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: error = %v", err)
	}

	p := testProject()
	p.Config.Columns = 0
	if _, err := Generate(FormatCSS, p, project.Viewport{}); !errors.Is(err, errors.ErrCodeInvalidProject) {
		t.Errorf("invalid project: error = %v", err)
	}

	p = testProject()
	p.Config.ColumnWidths = []float64{1, -2, 1}
	if _, err := Generate(FormatSVG, p, project.Viewport{}); !errors.Is(err, errors.ErrCodeInvalidSpecification) {
		t.Errorf("bad weight: error = %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []Format
		wantErr bool
	}{
		{"html", []Format{FormatHTML}, false},
		{"html, CSS,html", []Format{FormatHTML, FormatCSS}, false},
		{"svg,full,tailwind", []Format{FormatSVG, FormatFull, FormatTailwind}, false},
		{"", nil, true},
		{" , ", nil, true},
		{"html,pdf", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		f          Format
		ext, ctype string
	}{
		{FormatHTML, ".html", "text/html; charset=utf-8"},
		{FormatCSS, ".css", "text/css; charset=utf-8"},
		{FormatTailwind, ".tailwind.html", "text/html; charset=utf-8"},
		{FormatFull, ".html", "text/html; charset=utf-8"},
		{FormatSVG, ".svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		if tt.f.Ext() != tt.ext || tt.f.ContentType() != tt.ctype {
			t.Errorf("%s: ext %q type %q", tt.f, tt.f.Ext(), tt.f.ContentType())
		}
	}
}
