package colour

import (
	"testing"

	"github.com/cpmech/bspcsg/bootstrap"
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/split"
	"github.com/cpmech/bspcsg/tetmesh"
	"github.com/cpmech/gosl/chk"
)

// TestColourResolvesBlackA builds a unit tet cut by a large constraint
// triangle belonging to group A; the new common face should resolve from
// GREY to BLACK_A since the whole cut cross-section lies within the
// constraint's footprint.
func TestColourResolvesBlackA(t *testing.T) {
	chk.PrintTitle("ColourResolvesBlackA")
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

	Run(c)

	found := false
	for _, f := range c.Faces {
		if f.Colour == cplx.Grey {
			t.Fatal("expected no face to remain GREY after colouring")
		}
		if f.Colour == cplx.BlackA {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the cut face to resolve to BLACK_A")
	}
}
