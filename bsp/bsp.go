// Package bsp is the top-level driver: it threads one or two input meshes
// through dedup, tetmesh, bootstrap, split, colour and label to produce a
// boolean or repair result, the way gofem/fem.Main threads a Simulation
// through allocation, solution and output stages.
package bsp

import (
	"github.com/cpmech/bspcsg/bootstrap"
	"github.com/cpmech/bspcsg/colour"
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/dedup"
	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/offio"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/split"
	"github.com/cpmech/bspcsg/tetmesh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Run carries out the requested boolean operation (label.OpUnion,
// label.OpIntersection, label.OpDifference) over meshA and meshB, or a
// single-input repair (label.OpRepair) when meshB is nil, and returns the
// result's boundary skin.
func Run(meshA, meshB *offio.Mesh, opcode byte) (*label.Skin, error) {
	if meshA == nil {
		return nil, chk.Err("bsp: meshA is required")
	}
	if meshB == nil && opcode != label.OpRepair {
		return nil, chk.Err("bsp: meshB is required for opcode %q", string(opcode))
	}
	if meshB != nil && opcode == label.OpRepair {
		return nil, chk.Err("bsp: repair takes a single input mesh, not two")
	}

	io.Pf("bsp: welding input vertices\n")
	verts, trisA, trisB, err := mergeInputs(meshA, meshB)
	if err != nil {
		return nil, err
	}
	if len(verts) < 4 {
		return nil, chk.Err("bsp: fewer than 4 distinct vertices after welding, cannot tetrahedralize")
	}

	c := cplx.New()
	ids := make([]uint32, len(verts))
	for i, v := range verts {
		ids[i] = c.AddExplicitVertex(v.X, v.Y, v.Z)
	}

	var constraints []tetmesh.Triangle
	for _, tr := range trisA {
		constraints = append(constraints, tetmesh.Triangle{V0: ids[tr[0]], V1: ids[tr[1]], V2: ids[tr[2]]})
	}
	nRealA := len(constraints)
	for _, tr := range trisB {
		constraints = append(constraints, tetmesh.Triangle{V0: ids[tr[0]], V1: ids[tr[1]], V2: ids[tr[2]]})
	}
	nReal := len(constraints)

	io.Pf("bsp: tetrahedralizing %d points\n", len(verts))
	tm := tetmesh.Build(verts, ids)

	virtual := tetmesh.SynthesizeVirtualConstraints(tm, constraints)
	c.FirstVirtual = uint32(nReal)
	constraints = append(constraints, virtual...)

	coordOf := func(id uint32) point.XYZ {
		v := c.Vertices[id]
		return point.XYZ{X: v.X, Y: v.Y, Z: v.Z}
	}
	cm := tetmesh.Classify(tm, coordOf, constraints)

	c.Constraints = make([]cplx.Constraint, len(constraints))
	for i, k := range constraints {
		group := cplx.GroupNone
		switch {
		case i < nRealA:
			group = cplx.GroupA
		case i < nReal:
			group = cplx.GroupB
		}
		c.Constraints[i] = cplx.Constraint{V0: k.V0, V1: k.V1, V2: k.V2, Group: group}
	}

	io.Pf("bsp: bootstrapping %d cells\n", countNonGhost(tm))
	bootstrap.Build(c, tm, cm)

	io.Pf("bsp: splitting cells against constraints\n")
	split.Run(c)

	io.Pf("bsp: colouring faces\n")
	colour.Run(c)

	io.Pf("bsp: labelling cells\n")
	label.Run(c)

	skin := label.ExtractSkin(c, opcode)
	io.Pf("bsp: result skin has %d vertices, %d faces\n", len(skin.Verts), len(skin.Faces))
	return skin, nil
}

// mergeInputs welds meshA's (and, if present, meshB's) vertices into one
// shared index space with dedup.Weld, so coincident vertices between the
// two input solids collapse to a single complex vertex exactly as
// same-solid duplicates do, then remaps each mesh's own triangles onto it
// independently (dropping any that degenerate after welding).
func mergeInputs(meshA, meshB *offio.Mesh) (verts []point.XYZ, trisA, trisB [][3]uint32, err error) {
	combinedVerts := append([]point.XYZ{}, meshA.Verts...)
	if meshB != nil {
		combinedVerts = append(combinedVerts, meshB.Verts...)
	}

	welded, remap, werr := dedup.Weld(combinedVerts)
	if werr != nil {
		return nil, nil, nil, werr
	}

	for _, tr := range meshA.Tris {
		rt, ok := dedup.Remap(remap, tr)
		if ok {
			trisA = append(trisA, rt)
		}
	}
	if meshB != nil {
		offset := uint32(len(meshA.Verts))
		for _, tr := range meshB.Tris {
			shifted := [3]uint32{tr[0] + offset, tr[1] + offset, tr[2] + offset}
			rt, ok := dedup.Remap(remap, shifted)
			if ok {
				trisB = append(trisB, rt)
			}
		}
	}
	return welded, trisA, trisB, nil
}

func countNonGhost(tm *tetmesh.Tetrahedralization) int {
	n := 0
	for ti := range tm.TetVerts {
		if !tm.IsGhost(uint64(ti)) {
			n++
		}
	}
	return n
}
