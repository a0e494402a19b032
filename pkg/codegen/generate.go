package codegen

import (
	"strings"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// Format is an output format understood by Generate.
type Format string

const (
	FormatHTML     Format = "html"
	FormatCSS      Format = "css"
	FormatTailwind Format = "tailwind"
	FormatFull     Format = "full"
	FormatSVG      Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatCSS, FormatTailwind, FormatFull, FormatSVG}

// ValidateFormat returns an INVALID_FORMAT error for unknown formats.
func ValidateFormat(f string) error {
	for _, known := range Formats {
		if Format(f) == known {
			return nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", f, strings.Join(names, ", "))
}

// ParseFormats splits a comma-separated list such as "html,css" and
// validates each entry. Duplicates are dropped.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if err := ValidateFormat(part); err != nil {
			return nil, err
		}
		if f := Format(part); !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatCSS:
		return ".css"
	case FormatSVG:
		return ".svg"
	case FormatTailwind:
		return ".tailwind.html"
	default:
		return ".html"
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSS:
		return "text/css; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/html; charset=utf-8"
	}
}

// Generate renders p in format f. The viewport only affects FormatSVG, which
// lays out fresh tracks for it.
func Generate(f Format, p project.Project, v project.Viewport) ([]byte, error) {
	if err := ValidateFormat(string(f)); err != nil {
		return nil, err
	}
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch f {
	case FormatHTML:
		return []byte(HTML(p.Items) + "\n"), nil
	case FormatCSS:
		return []byte(CSS(p.Config, p.Items) + "\n"), nil
	case FormatTailwind:
		return []byte(Tailwind(p.Config, p.Items) + "\n"), nil
	case FormatFull:
		return []byte(FullHTML(p.Config, p.Items)), nil
	default:
		t, err := p.Config.Tracks(v)
		if err != nil {
			return nil, err
		}
		title := p.Name
		if title == "" {
			title = "Grid layout"
		}
		return OverlaySVG(t, p.Config, p.Items, WithSelected(p.SelectedID), WithLineNumbers(), WithTitle(title))
	}
}
