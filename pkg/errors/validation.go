package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds item and project names.
const maxNameLength = 128

// ValidateItemName checks a grid item name before it is written into
// generated markup. Empty names pass; callers substitute "Item N". Control
// and markup characters (<, >, &, ", ') are rejected.
func ValidateItemName(name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidItem, "item name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item name contains invalid control characters")
		}
	}

	if i := strings.IndexAny(name, `<>&"'`); i >= 0 {
		return New(ErrCodeInvalidItem, "item name contains markup character %q", name[i])
	}

	return nil
}

// projectIDRegex matches identifiers usable as store keys and file names.
var projectIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateProjectID checks an identifier used as a store key and, by the
// directory store, as a file name.
func ValidateProjectID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProject, "project id cannot be empty")
	}

	if len(id) > maxNameLength {
		return New(ErrCodeInvalidProject, "project id too long (max %d characters)", maxNameLength)
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidProject, "project id %q contains \"..\"", id)
	}

	if !projectIDRegex.MatchString(id) {
		return New(ErrCodeInvalidProject, "invalid project id: %q", id)
	}

	return nil
}

// ValidateProjectFilename accepts .json and .toml project paths.
func ValidateProjectFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "project path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return nil
	default:
		return New(ErrCodeInvalidPath, "unsupported project file %q (must be .json or .toml)", filepath.Base(path))
	}
}
