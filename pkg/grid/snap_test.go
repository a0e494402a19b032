package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

func TestPixelToLineIndex(t *testing.T) {
	lines := []float64{0, 100, 200, 300}

	tests := []struct {
		position float64
		want     int
	}{
		{0, 0},
		{50, 0}, // exact tie between 0 and 100: lowest index
		{80, 1},
		{150, 1}, // tie between 100 and 200
		{170, 2},
		{300, 3},
		{-40, 0},
		{1e9, 3},
		{250, 2},
		{250.0001, 3},
	}

	for _, tt := range tests {
		got, err := PixelToLineIndex(tt.position, lines)
		if err != nil {
			t.Fatalf("PixelToLineIndex(%v): %v", tt.position, err)
		}
		if got != tt.want {
			t.Errorf("PixelToLineIndex(%v) = %d, want %d", tt.position, got, tt.want)
		}
	}
}

func TestPixelToLineIndexRows(t *testing.T) {
	lines := []float64{0, 75, 150}

	tests := []struct {
		position float64
		want     int
	}{
		{0, 0},
		{40, 1},
		{30, 0},
		{60, 1},
		{110, 1},
		{140, 2},
	}

	for _, tt := range tests {
		got, _ := PixelToLineIndex(tt.position, lines)
		if got != tt.want {
			t.Errorf("PixelToLineIndex(%v) = %d, want %d", tt.position, got, tt.want)
		}
	}
}

func TestPixelToLineIndexDuplicateLines(t *testing.T) {
	// Zero-width tracks produce coincident lines; the first one wins.
	got, _ := PixelToLineIndex(100, []float64{0, 100, 100, 100, 200})
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestPixelToLineIndexEmpty(t *testing.T) {
	_, err := PixelToLineIndex(10, nil)
	if !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("error = %v, want INVALID_STATE", err)
	}
}

func TestSnapSpan(t *testing.T) {
	tests := []struct {
		name               string
		start, end         float64
		maxLines           int
		wantStart, wantEnd int
	}{
		{"rounds both ends", 2.4, 4.6, 12, 2, 5},
		{"clamps both ends", 0, 15, 12, 1, 13},
		{"zero span", 3, 3, 12, 3, 4},
		{"inverted span", 8, 2, 12, 8, 9},
		{"start past end of grid", 20, 25, 12, 12, 13},
		{"negative", -5, -1, 12, 1, 2},
		{"half rounds up", 2.5, 3.5, 12, 3, 4},
		{"exact fit", 1, 13, 12, 1, 13},
		{"single track grid", 1, 5, 1, 1, 2},
		{"infinite", math.Inf(-1), math.Inf(1), 6, 1, 7},
		{"NaN", math.NaN(), math.NaN(), 6, 1, 2},
		{"no tracks", 3, 4, 0, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := SnapSpan(tt.start, tt.end, tt.maxLines)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("SnapSpan(%v, %v, %d) = (%d, %d), want (%d, %d)",
					tt.start, tt.end, tt.maxLines, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSnapSpanAlwaysValid(t *testing.T) {
	for maxLines := 1; maxLines <= 6; maxLines++ {
		for a := -3.0; a <= 9; a += 0.25 {
			for b := -3.0; b <= 9; b += 0.25 {
				start, end := SnapSpan(a, b, maxLines)
				if start < 1 || start > maxLines {
					t.Fatalf("SnapSpan(%v, %v, %d) start %d out of range", a, b, maxLines, start)
				}
				if end < start+1 || end > maxLines+1 {
					t.Fatalf("SnapSpan(%v, %v, %d) end %d out of range", a, b, maxLines, end)
				}
			}
		}
	}
}

func TestPointerToGridPosition(t *testing.T) {
	spec := Spec{
		ColumnWeights:   []float64{1, 1, 1},
		RowWeights:      []float64{1, 1},
		Padding:         20,
		ContainerWidth:  320,
		ContainerHeight: 220,
	}
	tracks, err := ComputeTracks(spec)
	if err != nil {
		t.Fatal(err)
	}
	// columns: lines 0,93.33,186.67,280; rows: lines 0,90,180

	tests := []struct {
		x, y float64
		want Position
	}{
		{0, 0, Position{0, 0}},
		{20, 20, Position{0, 0}},
		{120, 115, Position{1, 1}},
		{300, 200, Position{3, 2}},
		{1000, -50, Position{3, 0}},
	}

	for _, tt := range tests {
		got, err := PointerToGridPosition(tt.x, tt.y, tracks, spec.Padding)
		if err != nil {
			t.Fatalf("PointerToGridPosition(%v, %v): %v", tt.x, tt.y, err)
		}
		if got != tt.want {
			t.Errorf("PointerToGridPosition(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPointerToGridPositionZeroTracks(t *testing.T) {
	if _, err := PointerToGridPosition(1, 1, Tracks{}, 0); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("error = %v, want INVALID_STATE", err)
	}
}

func TestPointerToGridPositionMatchesOverlay(t *testing.T) {
	// A pointer placed exactly on a rendered line must map to that line.
	spec := Spec{
		ColumnWeights:   []float64{1, 2, 1, 0.5},
		RowWeights:      []float64{3, 1},
		Padding:         12,
		ContainerWidth:  640,
		ContainerHeight: 480,
	}
	tracks, _ := ComputeTracks(spec)
	for i, x := range tracks.ColumnLines {
		for j, y := range tracks.RowLines {
			pos, _ := PointerToGridPosition(x+spec.Padding, y+spec.Padding, tracks, spec.Padding)
			if pos.Col != i || pos.Row != j {
				t.Errorf("line (%d,%d) mapped to %+v", i, j, pos)
			}
		}
	}
}
