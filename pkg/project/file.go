package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

// Format is a project document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateProjectFilename(path); err != nil {
		return "", err
	}
	return Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")), nil
}

// Marshal encodes p. JSON output is indented with two spaces.
func Marshal(p Project, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported project format %q", f)
	}
}

// Unmarshal decodes, normalizes and validates a project document.
func Unmarshal(data []byte, f Format) (Project, error) {
	var p Project
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &p); err != nil {
			return Project{}, errors.Wrap(errors.ErrCodeInvalidProject, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return Project{}, errors.Wrap(errors.ErrCodeInvalidProject, err, "decode toml")
		}
	default:
		return Project{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported project format %q", f)
	}

	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Project{}, err
	}
	return p, nil
}

// ReadFile reads a project from a .json or .toml file.
func ReadFile(path string) (Project, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Project{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("read %s: %w", path, err)
	}
	p, err := Unmarshal(data, f)
	if err != nil {
		return Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// WriteFile writes p to a .json or .toml file.
func WriteFile(p Project, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(p, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
