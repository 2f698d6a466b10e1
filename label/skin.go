package label

import (
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
)

// Skin is the boundary mesh of a boolean result: a dedup'd vertex list plus
// one polygon loop per boundary face, wound so its normal points away from
// the inside cell (outward with respect to the result solid).
type Skin struct {
	Verts []point.XYZ
	Faces [][]uint32
}

// ExtractSkin walks every face of the complex and keeps exactly those whose
// two neighbour cells disagree about membership in the opcode's result —
// the boundary of the selected solid. Grounded on the skin-extraction pass
// of makePolyhedralMesh.cpp.
func ExtractSkin(c *cplx.Complex, opcode byte) *Skin {
	remap := map[uint32]uint32{}
	var verts []point.XYZ
	resolve := func(v uint32) uint32 {
		if idx, ok := remap[v]; ok {
			return idx
		}
		xyz, ok := point.ApproxXYZ(c.VertexCoords(v))
		if !ok {
			r := point.ExactXYZ(c.VertexCoords(v))
			xf, _ := r.X.Float64()
			yf, _ := r.Y.Float64()
			zf, _ := r.Z.Float64()
			xyz = point.XYZ{X: xf, Y: yf, Z: zf}
		}
		idx := uint32(len(verts))
		verts = append(verts, xyz)
		remap[v] = idx
		return idx
	}

	var faces [][]uint32
	for fi := range c.Faces {
		f := c.Faces[fi]
		in0 := f.ConnCells[0] != cplx.NoIndex && Inside(c.Cells[f.ConnCells[0]].Placement, opcode)
		in1 := f.ConnCells[1] != cplx.NoIndex && Inside(c.Cells[f.ConnCells[1]].Placement, opcode)
		if in0 == in1 {
			continue
		}
		cycle := faceCycleVerts(c, uint64(fi))
		loop := make([]uint32, len(cycle))
		for i, v := range cycle {
			loop[i] = resolve(v)
		}
		if in0 {
			// side 0 is the inside cell: the stored winding's normal points
			// toward it, so reverse it to point outward.
			for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
				loop[i], loop[j] = loop[j], loop[i]
			}
		}
		faces = append(faces, loop)
	}
	return &Skin{Verts: verts, Faces: faces}
}

// faceCycleVerts walks a face's cyclic edge list into vertex order, the
// same technique used by split.faceCycleVerts.
func faceCycleVerts(c *cplx.Complex, fi uint64) []uint32 {
	edges := c.Faces[fi].Edges
	n := len(edges)
	verts := make([]uint32, n)
	e0 := c.Edges[edges[0]]
	e1 := c.Edges[edges[1]]
	verts[0] = e0.V0
	if e0.V0 == e1.V0 || e0.V0 == e1.V1 {
		verts[0] = e0.V1
	}
	cur := verts[0]
	for i := 0; i < n; i++ {
		e := c.Edges[edges[i]]
		cur = e.OtherEndpoint(cur)
		verts[(i+1)%n] = cur
	}
	return verts
}
