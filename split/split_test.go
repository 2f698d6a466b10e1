package split

import (
	"testing"

	"github.com/cpmech/bspcsg/bootstrap"
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/tetmesh"
	"github.com/cpmech/gosl/chk"
)

// buildCutTet sets up a unit tetrahedron plus one constraint triangle lying
// in the plane x=0.3, which straddles the tet (vertex (1,0,0) is over, the
// other three are under), and runs it through bootstrap.
func buildCutTet(t *testing.T) *cplx.Complex {
	c := cplx.New()
	tetIDs := []uint32{
		c.AddExplicitVertex(0, 0, 0),
		c.AddExplicitVertex(1, 0, 0),
		c.AddExplicitVertex(0, 1, 0),
		c.AddExplicitVertex(0, 0, 1),
	}
	planeIDs := [3]uint32{
		c.AddExplicitVertex(0.3, -5, -5),
		c.AddExplicitVertex(0.3, 5, -5),
		c.AddExplicitVertex(0.3, -5, 5),
	}
	c.Constraints = append(c.Constraints, cplx.Constraint{V0: planeIDs[0], V1: planeIDs[1], V2: planeIDs[2], Group: cplx.GroupA})

	pts := []point.XYZ{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	tm := tetmesh.Build(pts, tetIDs)
	coordOf := func(id uint32) point.XYZ {
		v := c.Vertices[id]
		return point.XYZ{X: v.X, Y: v.Y, Z: v.Z}
	}
	constraints := []tetmesh.Triangle{{V0: planeIDs[0], V1: planeIDs[1], V2: planeIDs[2]}}
	cm := tetmesh.Classify(tm, coordOf, constraints)
	bootstrap.Build(c, tm, cm)
	return c
}

func TestSplitCellStraddle(t *testing.T) {
	chk.PrintTitle("SplitCellStraddle")
	c := buildCutTet(t)
	if len(c.Cells) != 1 {
		t.Fatalf("expected bootstrap to produce 1 cell, got %d", len(c.Cells))
	}

	Run(c)

	if len(c.Cells) != 2 {
		t.Fatalf("expected 2 cells after splitting, got %d", len(c.Cells))
	}
	for ci := range c.Cells {
		if len(c.Cells[ci].Constraints) != 0 {
			t.Fatalf("cell %d: expected no pending constraints left, got %d", ci, len(c.Cells[ci].Constraints))
		}
		if err := c.CheckCellEuler(uint64(ci)); err != nil {
			t.Fatalf("cell %d: %v", ci, err)
		}
		for _, fi := range c.Cells[ci].Faces {
			if err := c.CheckFaceCycle(fi); err != nil {
				t.Fatalf("cell %d face %d: %v", ci, fi, err)
			}
			if err := c.CheckAdjacencySymmetry(fi); err != nil {
				t.Fatalf("cell %d face %d: %v", ci, fi, err)
			}
			if err := c.CheckPlaneFidelity(fi); err != nil {
				t.Fatalf("cell %d face %d: %v", ci, fi, err)
			}
		}
	}

	greyFound := false
	for _, f := range c.Faces {
		if f.Colour == cplx.Grey {
			greyFound = true
		}
	}
	if !greyFound {
		t.Fatal("expected the new common face to be coloured GREY")
	}
}

func TestSplitCellNoOp(t *testing.T) {
	chk.PrintTitle("SplitCellNoOp")
	c := cplx.New()
	ids := []uint32{
		c.AddExplicitVertex(0, 0, 0),
		c.AddExplicitVertex(1, 0, 0),
		c.AddExplicitVertex(0, 1, 0),
		c.AddExplicitVertex(0, 0, 1),
	}
	pts := []point.XYZ{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	tm := tetmesh.Build(pts, ids)
	coordOf := func(id uint32) point.XYZ {
		v := c.Vertices[id]
		return point.XYZ{X: v.X, Y: v.Y, Z: v.Z}
	}
	cm := tetmesh.Classify(tm, coordOf, nil)
	bootstrap.Build(c, tm, cm)

	Run(c)
	if len(c.Cells) != 1 {
		t.Fatalf("expected no split with zero constraints, got %d cells", len(c.Cells))
	}
}
