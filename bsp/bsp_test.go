package bsp

import (
	"testing"

	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/offio"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
)

// unitTet returns a single unit tetrahedron's 4 triangular faces, wound like
// tetmesh.TetFaceLocalVerts (normals pointing into the tet), as a
// standalone OFF-ready mesh.
func unitTet() *offio.Mesh {
	verts := []point.XYZ{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	tris := [][3]uint32{
		{1, 3, 2},
		{0, 2, 3},
		{0, 3, 1},
		{0, 1, 2},
	}
	return &offio.Mesh{Verts: verts, Tris: tris}
}

func TestRunRepairUnitTet(t *testing.T) {
	chk.PrintTitle("RunRepairUnitTet")
	skin, err := Run(unitTet(), nil, label.OpRepair)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(skin.Faces) == 0 {
		t.Fatal("expected a non-empty skin for a closed unit tet")
	}
	for _, v := range skin.Verts {
		if v.X < -1e-6 || v.Y < -1e-6 || v.Z < -1e-6 {
			t.Fatalf("skin vertex %+v falls outside the unit tet's bounding box", v)
		}
	}
}

func TestRunRejectsMissingSecondMesh(t *testing.T) {
	chk.PrintTitle("RunRejectsMissingSecondMesh")
	if _, err := Run(unitTet(), nil, label.OpUnion); err == nil {
		t.Fatal("expected an error when meshB is nil for a two-input opcode")
	}
}

func TestRunRejectsSecondMeshForRepair(t *testing.T) {
	chk.PrintTitle("RunRejectsSecondMeshForRepair")
	if _, err := Run(unitTet(), unitTet(), label.OpRepair); err == nil {
		t.Fatal("expected an error when meshB is supplied for repair")
	}
}
