package dedup

import (
	"testing"

	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
)

func TestRunWeldsCoincidentVertices(t *testing.T) {
	chk.PrintTitle("RunWeldsCoincidentVertices")
	// two triangles sharing an edge, each carrying its own copies of the
	// shared edge's endpoints, as a raw triangle soup would.
	verts := []point.XYZ{
		{X: 0, Y: 0, Z: 0}, // 0
		{X: 1, Y: 0, Z: 0}, // 1
		{X: 0, Y: 1, Z: 0}, // 2
		{X: 1, Y: 0, Z: 0}, // 3 == 1
		{X: 0, Y: 1, Z: 0}, // 4 == 2
		{X: 1, Y: 1, Z: 0}, // 5
	}
	tris := [][3]uint32{
		{0, 1, 2},
		{3, 5, 4},
	}
	res, err := Run(verts, tris)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Verts) != 4 {
		t.Fatalf("expected 4 welded vertices, got %d", len(res.Verts))
	}
	if len(res.Tris) != 2 {
		t.Fatalf("expected both triangles to survive, got %d", len(res.Tris))
	}
	if res.Tris[0][1] != res.Tris[1][0] {
		t.Fatalf("shared edge endpoint did not weld to the same index: %v vs %v", res.Tris[0], res.Tris[1])
	}
}

func TestRunDropsDegenerateTriangle(t *testing.T) {
	chk.PrintTitle("RunDropsDegenerateTriangle")
	verts := []point.XYZ{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0}, // coincides with vertex 1
	}
	tris := [][3]uint32{{0, 1, 2}}
	res, err := Run(verts, tris)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Tris) != 0 {
		t.Fatalf("expected the degenerate triangle to be dropped, got %d triangles", len(res.Tris))
	}
}

func TestRunEmptyInput(t *testing.T) {
	chk.PrintTitle("RunEmptyInput")
	res, err := Run(nil, nil)
	if err != nil {
		t.Fatalf("Run failed on empty input: %v", err)
	}
	if len(res.Verts) != 0 || len(res.Tris) != 0 {
		t.Fatal("expected an empty result for empty input")
	}
}
