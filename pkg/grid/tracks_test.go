package grid

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func equalSpec() Spec {
	return Spec{
		ColumnWeights:   []float64{1, 1, 1},
		RowWeights:      []float64{1, 1},
		ItemGap:         10,
		Padding:         20,
		ContainerWidth:  300,
		ContainerHeight: 200,
	}
}

func TestComputeTracksEqualWeights(t *testing.T) {
	spec := equalSpec()
	tracks, err := ComputeTracks(spec)
	if err != nil {
		t.Fatalf("ComputeTracks: %v", err)
	}

	if tracks.AvailableWidth != 260 {
		t.Errorf("AvailableWidth = %v, want 260", tracks.AvailableWidth)
	}
	if tracks.AvailableHeight != 160 {
		t.Errorf("AvailableHeight = %v, want 160", tracks.AvailableHeight)
	}
	for i, w := range tracks.CellWidths {
		if !approx(w, 86.67) {
			t.Errorf("CellWidths[%d] = %v, want ~86.67", i, w)
		}
	}
	for i, h := range tracks.CellHeights {
		if h != 80 {
			t.Errorf("CellHeights[%d] = %v, want 80", i, h)
		}
	}

	wantLines := []float64{0, 86.67, 173.33, 260}
	if len(tracks.ColumnLines) != len(wantLines) {
		t.Fatalf("ColumnLines = %v, want %v", tracks.ColumnLines, wantLines)
	}
	for i, want := range wantLines {
		if !approx(tracks.ColumnLines[i], want) {
			t.Errorf("ColumnLines[%d] = %v, want ~%v", i, tracks.ColumnLines[i], want)
		}
	}
	if tracks.ColumnLines[0] != 0 {
		t.Errorf("ColumnLines[0] = %v, want exactly 0", tracks.ColumnLines[0])
	}

	if !ValidateTracks(spec, tracks) {
		t.Errorf("ValidateTracks = false: %v", CheckTracks(spec, tracks))
	}
}

func TestComputeTracksUnequalWeights(t *testing.T) {
	spec := Spec{
		ColumnWeights:   []float64{1, 2, 1},
		RowWeights:      []float64{1, 1},
		ItemGap:         16,
		Padding:         16,
		ContainerWidth:  400,
		ContainerHeight: 200,
	}
	tracks, err := ComputeTracks(spec)
	if err != nil {
		t.Fatalf("ComputeTracks: %v", err)
	}

	if tracks.AvailableWidth != 368 {
		t.Errorf("AvailableWidth = %v, want 368", tracks.AvailableWidth)
	}
	if want := []float64{92, 184, 92}; !reflect.DeepEqual(tracks.CellWidths, want) {
		t.Errorf("CellWidths = %v, want %v", tracks.CellWidths, want)
	}
	if want := []float64{0, 92, 276, 368}; !reflect.DeepEqual(tracks.ColumnLines, want) {
		t.Errorf("ColumnLines = %v, want %v", tracks.ColumnLines, want)
	}
}

func TestComputeTracksGapIndependent(t *testing.T) {
	a := equalSpec()
	b := equalSpec()
	b.ItemGap = 64

	ta, _ := ComputeTracks(a)
	tb, _ := ComputeTracks(b)
	if !reflect.DeepEqual(ta, tb) {
		t.Errorf("tracks depend on gap: %v vs %v", ta, tb)
	}
}

func TestComputeTracksInvariants(t *testing.T) {
	specs := []Spec{
		{ColumnWeights: []float64{1}, RowWeights: []float64{1}, ContainerWidth: 1, ContainerHeight: 1},
		{ColumnWeights: []float64{0.25, 3, 1.5, 7}, RowWeights: []float64{2, 0.5}, Padding: 13, ContainerWidth: 1021, ContainerHeight: 377},
		{ColumnWeights: repeat(1, 12), RowWeights: repeat(1, 8), Padding: 16, ContainerWidth: 800, ContainerHeight: 600},
		{ColumnWeights: []float64{1e-6, 1e6}, RowWeights: []float64{3, 3, 3}, ContainerWidth: 333.3, ContainerHeight: 99.9},
		{ColumnWeights: repeat(0.1, 97), RowWeights: repeat(1.7, 41), Padding: 1.5, ContainerWidth: 4096, ContainerHeight: 2160},
	}

	for i, spec := range specs {
		tracks, err := ComputeTracks(spec)
		if err != nil {
			t.Fatalf("spec %d: %v", i, err)
		}
		if got, want := len(tracks.ColumnLines), len(spec.ColumnWeights)+1; got != want {
			t.Errorf("spec %d: %d column lines, want %d", i, got, want)
		}
		if got, want := len(tracks.RowLines), len(spec.RowWeights)+1; got != want {
			t.Errorf("spec %d: %d row lines, want %d", i, got, want)
		}
		if math.Abs(sum(tracks.CellWidths)-tracks.AvailableWidth) > Tolerance {
			t.Errorf("spec %d: widths sum %v, available %v", i, sum(tracks.CellWidths), tracks.AvailableWidth)
		}
		if math.Abs(sum(tracks.CellHeights)-tracks.AvailableHeight) > Tolerance {
			t.Errorf("spec %d: heights sum %v, available %v", i, sum(tracks.CellHeights), tracks.AvailableHeight)
		}
		if !nonDecreasing(tracks.ColumnLines) || !nonDecreasing(tracks.RowLines) {
			t.Errorf("spec %d: lines not non-decreasing", i)
		}
		if tracks.ColumnLines[len(tracks.ColumnLines)-1] != sum(tracks.CellWidths) {
			t.Errorf("spec %d: last column line %v != sum %v", i, tracks.ColumnLines[len(tracks.ColumnLines)-1], sum(tracks.CellWidths))
		}
		if !ValidateTracks(spec, tracks) {
			t.Errorf("spec %d: %v", i, CheckTracks(spec, tracks))
		}
	}
}

func TestComputeTracksIdempotent(t *testing.T) {
	spec := Spec{
		ColumnWeights:   []float64{1, 2.5, 0.75},
		RowWeights:      []float64{1, 1, 3},
		Padding:         7,
		ContainerWidth:  913,
		ContainerHeight: 411,
	}
	first, err := ComputeTracks(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeTracks(spec)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestComputeTracksDoesNotAliasInput(t *testing.T) {
	spec := equalSpec()
	tracks, _ := ComputeTracks(spec)
	spec.ColumnWeights[0] = 100
	again, _ := ComputeTracks(equalSpec())
	if !reflect.DeepEqual(tracks, again) {
		t.Error("mutating spec weights changed previously computed tracks")
	}
}

func TestComputeTracksInvalid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Spec)
	}{
		{"empty columns", func(s *Spec) { s.ColumnWeights = nil }},
		{"empty rows", func(s *Spec) { s.RowWeights = []float64{} }},
		{"all zero weights", func(s *Spec) { s.ColumnWeights = []float64{0, 0, 0} }},
		{"one zero weight", func(s *Spec) { s.RowWeights = []float64{1, 0} }},
		{"negative weight", func(s *Spec) { s.ColumnWeights = []float64{1, -1, 1} }},
		{"NaN weight", func(s *Spec) { s.ColumnWeights = []float64{1, math.NaN(), 1} }},
		{"infinite weight", func(s *Spec) { s.RowWeights = []float64{math.Inf(1), 1} }},
		{"overflowing sum", func(s *Spec) { s.ColumnWeights = []float64{math.MaxFloat64, math.MaxFloat64} }},
		{"column count mismatch", func(s *Spec) { s.Columns = 4 }},
		{"row count mismatch", func(s *Spec) { s.Rows = 1 }},
		{"negative count", func(s *Spec) { s.Columns = -3 }},
		{"NaN container", func(s *Spec) { s.ContainerWidth = math.NaN() }},
		{"infinite padding", func(s *Spec) { s.Padding = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := equalSpec()
			tt.mod(&spec)
			tracks, err := ComputeTracks(spec)
			if err == nil {
				t.Fatalf("expected error, got tracks %v", tracks)
			}
			if !errors.Is(err, errors.ErrCodeInvalidSpecification) {
				t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrCodeInvalidSpecification)
			}
			if !reflect.DeepEqual(tracks, Tracks{}) {
				t.Errorf("partial tracks returned: %v", tracks)
			}
		})
	}
}

func TestComputeTracksDeclaredCounts(t *testing.T) {
	spec := equalSpec()
	spec.Columns = 3
	spec.Rows = 2
	tracks, err := ComputeTracks(spec)
	if err != nil {
		t.Fatalf("matching declared counts rejected: %v", err)
	}
	if tracks.Columns() != 3 || tracks.Rows() != 2 {
		t.Errorf("Columns/Rows = %d/%d, want 3/2", tracks.Columns(), tracks.Rows())
	}
}

func TestComputeTracksDegenerate(t *testing.T) {
	spec := equalSpec()
	spec.Padding = 160 // available = 300-320 = -20

	tracks, err := ComputeTracks(spec)
	if err != nil {
		t.Fatalf("degenerate geometry must not fail: %v", err)
	}
	if tracks.AvailableWidth != -20 {
		t.Errorf("AvailableWidth = %v, want -20 (passed through)", tracks.AvailableWidth)
	}
	if !tracks.Degenerate() {
		t.Error("Degenerate() = false, want true")
	}
	for i, w := range tracks.CellWidths {
		if w >= 0 {
			t.Errorf("CellWidths[%d] = %v, want negative", i, w)
		}
	}

	err = CheckGeometry(tracks)
	if !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("CheckGeometry = %v, want DEGENERATE_GEOMETRY", err)
	}
	if !errors.IsAdvisory(err) {
		t.Error("degenerate geometry should be advisory")
	}
	if !ValidateTracks(spec, tracks) {
		t.Errorf("degenerate tracks should still validate: %v", CheckTracks(spec, tracks))
	}
}

func TestCheckGeometryHealthy(t *testing.T) {
	tracks, _ := ComputeTracks(equalSpec())
	if err := CheckGeometry(tracks); err != nil {
		t.Errorf("CheckGeometry = %v, want nil", err)
	}
	if tracks.Degenerate() {
		t.Error("Degenerate() = true for healthy tracks")
	}
}

func TestCheckGeometryZeroHeight(t *testing.T) {
	spec := equalSpec()
	spec.ContainerHeight = 40 // 40 - 2*20 = 0
	tracks, _ := ComputeTracks(spec)
	if err := CheckGeometry(tracks); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("CheckGeometry = %v, want DEGENERATE_GEOMETRY", err)
	}
}

func TestCheckTracksDetectsCorruption(t *testing.T) {
	spec := equalSpec()

	tests := []struct {
		name string
		mod  func(*Tracks)
	}{
		{"missing cell", func(tr *Tracks) { tr.CellWidths = tr.CellWidths[:2] }},
		{"missing line", func(tr *Tracks) { tr.RowLines = tr.RowLines[:2] }},
		{"sum drift", func(tr *Tracks) { tr.CellWidths[0] += 5 }},
		{"available drift", func(tr *Tracks) { tr.AvailableHeight = 150; tr.CellHeights = []float64{75, 75} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, _ := ComputeTracks(spec)
			tt.mod(&tracks)
			err := CheckTracks(spec, tracks)
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, errors.ErrCodeInvalidState) {
				t.Errorf("code = %v, want INVALID_STATE", errors.CodeOf(err))
			}
			if ValidateTracks(spec, tracks) {
				t.Error("ValidateTracks = true for corrupted tracks")
			}
		})
	}
}

func TestCheckTracksWithinTolerance(t *testing.T) {
	spec := equalSpec()
	tracks, _ := ComputeTracks(spec)
	tracks.CellWidths[1] += Tolerance / 2
	if err := CheckTracks(spec, tracks); err != nil {
		t.Errorf("drift within tolerance rejected: %v", err)
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func nonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
