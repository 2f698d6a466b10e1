package cplx

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// buildUnitTet constructs the single-cell complex of a unit tetrahedron,
// mirroring scenario S1 of spec §8: 1 cell, 4 faces, 6 edges, all white.
func buildUnitTet(t *testing.T) (*Complex, uint64) {
	c := New()
	v0 := c.AddExplicitVertex(0, 0, 0)
	v1 := c.AddExplicitVertex(1, 0, 0)
	v2 := c.AddExplicitVertex(0, 1, 0)
	v3 := c.AddExplicitVertex(0, 0, 1)

	// 4 faces, each a triangle of 3 edges; edges shared between faces are
	// reused rather than duplicated, mirroring the teacher bootstrap's
	// "build only if not already built" rule.
	edgeOf := map[[2]uint32]uint64{}
	getEdge := func(a, b uint32) uint64 {
		key := [2]uint32{a, b}
		if a > b {
			key = [2]uint32{b, a}
		}
		if id, ok := edgeOf[key]; ok {
			return id
		}
		id := c.AddEdge(Edge{V0: a, V1: b, Plane: MeshPlaneFingerprint{Tri2: [3]uint32{NoVertex, NoVertex, NoVertex}}})
		edgeOf[key] = id
		return id
	}

	faceOf := func(a, b, cc uint32) uint64 {
		e0 := getEdge(a, b)
		e1 := getEdge(b, cc)
		e2 := getEdge(cc, a)
		return c.AddFace(Face{
			Edges:     []uint64{e0, e1, e2},
			ConnCells: [2]uint64{0, NoIndex},
			Plane:     [3]uint32{a, b, cc},
			Colour:    White,
		})
	}

	f0 := faceOf(v0, v2, v1)
	f1 := faceOf(v0, v1, v3)
	f2 := faceOf(v0, v3, v2)
	f3 := faceOf(v1, v2, v3)

	cell := c.AddCell(Cell{Faces: []uint64{f0, f1, f2, f3}})
	return c, cell
}

func TestUnitTetInvariants(t *testing.T) {
	chk.PrintTitle("UnitTetInvariants")
	c, cell := buildUnitTet(t)
	if len(c.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(c.Vertices))
	}
	if len(c.Edges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(c.Edges))
	}
	if len(c.Faces) != 4 {
		t.Fatalf("expected 4 faces, got %d", len(c.Faces))
	}
	if err := c.CheckCellEuler(cell); err != nil {
		t.Fatal(err)
	}
	for fi := range c.Faces {
		if err := c.CheckFaceCycle(uint64(fi)); err != nil {
			t.Fatal(err)
		}
		if err := c.CheckPlaneFidelity(uint64(fi)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOrBinScratchRestoresOnlyTouched(t *testing.T) {
	chk.PrintTitle("OrBinScratchRestoresOnlyTouched")
	c := New()
	c.AddExplicitVertex(0, 0, 0)
	c.AddExplicitVertex(1, 1, 1)
	s := c.BorrowOrBin()
	s.Set(0, 1)
	s.Set(1, -1)
	if s.Get(0) != 1 || s.Get(1) != -1 {
		t.Fatal("expected set values to read back")
	}
	s.Release()
	if c.vrtsOrBin[0] != 2 || c.vrtsOrBin[1] != 2 {
		t.Fatal("expected release to restore sentinel 2 on touched entries")
	}
}

func TestVisitScratchScoped(t *testing.T) {
	chk.PrintTitle("VisitScratchScoped")
	c := New()
	c.AddEdge(Edge{V0: 0, V1: 1})
	c.AddEdge(Edge{V0: 1, V1: 2})
	s := c.BorrowEdgeVisit()
	s.Visit(0)
	if !s.Visited(0) || s.Visited(1) {
		t.Fatal("unexpected visit state")
	}
	s.Release()
	if c.edgeVisit[0] {
		t.Fatal("expected release to clear visited bit")
	}
}
