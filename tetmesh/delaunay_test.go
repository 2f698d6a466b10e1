package tetmesh

import (
	"testing"

	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
)

func TestBuildSingleTet(t *testing.T) {
	chk.PrintTitle("BuildSingleTet")
	pts := []point.XYZ{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	ids := []uint32{0, 1, 2, 3}
	tm := Build(pts, ids)

	real := 0
	for i := range tm.TetVerts {
		if !tm.IsGhost(uint64(i)) {
			real++
		}
	}
	if real != 1 {
		t.Fatalf("expected exactly 1 real tet for 4 non-coplanar points, got %d", real)
	}
	// every face of every tet (real or ghost) must have a neighbor
	for ti := range tm.TetVerts {
		nFaces := 4
		if tm.IsGhost(uint64(ti)) {
			nFaces = 1
		}
		for fi := 0; fi < nFaces; fi++ {
			if tm.TetNeighbors[ti][fi] == NoIndex {
				t.Fatalf("tet %d face %d has no neighbor", ti, fi)
			}
		}
	}
}

func TestBuildCube(t *testing.T) {
	chk.PrintTitle("BuildCube")
	pts := []point.XYZ{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	ids := make([]uint32, len(pts))
	for i := range ids {
		ids[i] = uint32(i)
	}
	tm := Build(pts, ids)
	real := 0
	for i := range tm.TetVerts {
		if !tm.IsGhost(uint64(i)) {
			real++
		}
	}
	if real < 5 {
		t.Fatalf("expected a cube to decompose into at least 5 tets, got %d", real)
	}
}

func TestClassifyStraddle(t *testing.T) {
	chk.PrintTitle("ClassifyStraddle")
	pts := []point.XYZ{
		{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 0, Y: 0, Z: 2},
	}
	coordOf := func(id uint32) point.XYZ { return pts[id] }
	ids := []uint32{0, 1, 2, 3}
	tm := Build(pts, ids)
	// a triangle plane z=1 cuts straight through the tet's interior
	constraints := []Triangle{{V0: 4, V1: 5, V2: 6}}
	extra := []point.XYZ{{X: -5, Y: -5, Z: 1}, {X: 5, Y: -5, Z: 1}, {X: 0, Y: 5, Z: 1}}
	coordOfExt := func(id uint32) point.XYZ {
		if int(id) < len(pts) {
			return pts[id]
		}
		return extra[int(id)-len(pts)]
	}
	cm := Classify(tm, coordOfExt, constraints)
	found := false
	for _, tet := range cm.Pending {
		if len(tet) > 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one tet flagged as straddled by the constraint plane")
	}
	_ = coordOf
}
