package drag

import (
	"strings"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

// Handle names the part of an item a gesture grabbed.
type Handle string

const (
	Move      Handle = "move"
	North     Handle = "n"
	NorthEast Handle = "ne"
	East      Handle = "e"
	SouthEast Handle = "se"
	South     Handle = "s"
	SouthWest Handle = "sw"
	West      Handle = "w"
	NorthWest Handle = "nw"
)

// Handles lists every handle, move first then clockwise from north.
var Handles = []Handle{Move, North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// ParseHandle converts a handle name such as "se" or "move" to a Handle.
func ParseHandle(s string) (Handle, error) {
	h := Handle(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Handles {
		if h == known {
			return h, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown handle %q (want one of %s)", s, handleNames())
}

func handleNames() string {
	names := make([]string, len(Handles))
	for i, h := range Handles {
		names[i] = string(h)
	}
	return strings.Join(names, ", ")
}

func (h Handle) String() string { return string(h) }

// Resize reports whether h drags edges rather than the whole item.
func (h Handle) Resize() bool { return h != Move && h != "" }

func (h Handle) north() bool { return h.Resize() && strings.HasPrefix(string(h), "n") }
func (h Handle) south() bool { return h.Resize() && strings.HasPrefix(string(h), "s") }
func (h Handle) east() bool  { return h.Resize() && strings.HasSuffix(string(h), "e") }
func (h Handle) west() bool  { return h.Resize() && strings.HasSuffix(string(h), "w") }
