package bootstrap

import (
	"testing"

	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/tetmesh"
	"github.com/cpmech/gosl/chk"
)

// TestS1SingleTet mirrors scenario S1 of spec §8: a unit tetrahedron with
// no constraints yields exactly 1 cell, 4 faces, 6 edges, all white.
func TestS1SingleTet(t *testing.T) {
	chk.PrintTitle("S1SingleTet")
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
	Build(c, tm, cm)

	if len(c.Cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(c.Cells))
	}
	if len(c.Faces) != 4 {
		t.Fatalf("expected 4 faces, got %d", len(c.Faces))
	}
	if len(c.Edges) != 6 {
		t.Fatalf("expected 6 edges, got %d", len(c.Edges))
	}
	for i, f := range c.Faces {
		if f.Colour != cplx.White {
			t.Fatalf("face %d: expected WHITE, got %s", i, f.Colour)
		}
	}
	if err := c.CheckCellEuler(0); err != nil {
		t.Fatal(err)
	}
}
