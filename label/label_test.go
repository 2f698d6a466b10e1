package label

import (
	"testing"

	"github.com/cpmech/bspcsg/bootstrap"
	"github.com/cpmech/bspcsg/colour"
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/split"
	"github.com/cpmech/bspcsg/tetmesh"
	"github.com/cpmech/gosl/chk"
)

// TestRepairCutTetSkin mirrors the same cut-tetrahedron scenario used by
// split and colour's own tests: a unit tet cut by the plane x=0.3 produces
// a tiny corner tetrahedron on the "over" side. Under single-mesh repair
// (opcode '0'), the skin should be exactly that corner tet: 4 triangular
// faces over 4 vertices.
func TestRepairCutTetSkin(t *testing.T) {
	chk.PrintTitle("RepairCutTetSkin")
	c := cplx.New()
	tetIDs := []uint32{
		c.AddExplicitVertex(0, 0, 0),
		c.AddExplicitVertex(1, 0, 0),
		c.AddExplicitVertex(0, 1, 0),
		c.AddExplicitVertex(0, 0, 1),
	}
	planeIDs := [3]uint32{
		c.AddExplicitVertex(0.3, -5, -5),
		c.AddExplicitVertex(0.3, 10, -5),
		c.AddExplicitVertex(0.3, -5, 10),
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
	split.Run(c)
	colour.Run(c)
	Run(c)

	skin := ExtractSkin(c, OpRepair)
	if len(skin.Faces) != 4 {
		t.Fatalf("expected the corner tet's 4 triangular faces, got %d", len(skin.Faces))
	}
	for i, f := range skin.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d: expected a triangle, got %d vertices", i, len(f))
		}
	}
	if len(skin.Verts) != 4 {
		t.Fatalf("expected 4 distinct vertices, got %d", len(skin.Verts))
	}
}
