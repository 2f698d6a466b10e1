// Package bootstrap implements spec §4.2: turning the external
// tetrahedralization + constraint-map collaborators into the initial
// polyhedral complex, one cell per non-ghost tetrahedron.
package bootstrap

import (
	"sort"

	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/tetmesh"
)

type faceKey [3]uint32
type edgeKey [2]uint32

func sortedFaceKey(v [3]uint32) faceKey {
	s := v[:]
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return faceKey{s[0], s[1], s[2]}
}

func sortedEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Build turns tm+cm into c's initial cells/faces/edges. Cell indices are
// assigned to non-ghost tets in ascending tet order (step 1 of spec §4.2);
// face/edge identity is then resolved through global vertex-keyed maps
// rather than replicating the "lower-indexed neighbour" bookkeeping of the
// original pass-by-pass walk — an equivalent, more idiomatic dedup that
// still creates each shared entity exactly once (see DESIGN.md).
func Build(c *cplx.Complex, tm *tetmesh.Tetrahedralization, cm *tetmesh.ConstraintMap) {
	n := len(tm.TetVerts)
	cellOf := make([]uint64, n)
	for i := range cellOf {
		cellOf[i] = cplx.NoIndex
	}

	// step 1: ascending cell index per non-ghost tet
	for ti := 0; ti < n; ti++ {
		if tm.IsGhost(uint64(ti)) {
			continue
		}
		cellOf[ti] = c.AddCell(cplx.Cell{Constraints: append([]uint32{}, cm.Pending[ti]...)})
	}

	edgeOf := map[edgeKey]uint64{}
	getEdge := func(a, b uint32) uint64 {
		key := sortedEdgeKey(a, b)
		if id, ok := edgeOf[key]; ok {
			return id
		}
		id := c.AddEdge(cplx.Edge{
			V0: a, V1: b,
			Plane: cplx.MeshPlaneFingerprint{Tri2: [3]uint32{cplx.NoVertex, cplx.NoVertex, cplx.NoVertex}},
		})
		edgeOf[key] = id
		return id
	}

	faceOf := map[faceKey]uint64{}

	for ti := 0; ti < n; ti++ {
		if tm.IsGhost(uint64(ti)) {
			continue
		}
		tv := tm.TetVerts[ti]
		myCell := cellOf[ti]
		for fi := 0; fi < 4; fi++ {
			fv := [3]uint32{
				tv[tetmesh.TetFaceLocalVerts[fi][0]],
				tv[tetmesh.TetFaceLocalVerts[fi][1]],
				tv[tetmesh.TetFaceLocalVerts[fi][2]],
			}
			key := sortedFaceKey(fv)
			neighborTet := tm.TetNeighbors[ti][fi]

			if existing, ok := faceOf[key]; ok {
				// the neighbour already built it; just link our cell in.
				f := c.Faces[existing]
				f.ConnCells[1] = myCell
				c.Faces[existing] = f
				c.Cells[myCell].Faces = append(c.Cells[myCell].Faces, existing)
				continue
			}

			e0 := getEdge(fv[0], fv[1])
			e1 := getEdge(fv[1], fv[2])
			e2 := getEdge(fv[2], fv[0])

			coplanar := append([]uint32{}, cm.FaceCoplanar[ti][fi]...)
			colour := cplx.White
			if len(coplanar) > 0 {
				colour = cplx.Grey
				allVirtual := true
				for _, k := range coplanar {
					if !c.IsVirtual(k) {
						allVirtual = false
						break
					}
				}
				if allVirtual {
					colour = cplx.White
				}
			}

			neighborCell := cplx.NoIndex
			if neighborTet != tetmesh.NoIndex && !tm.IsGhost(neighborTet) {
				neighborCell = cellOf[neighborTet]
			}

			fid := c.AddFace(cplx.Face{
				Edges:     []uint64{e0, e1, e2},
				ConnCells: [2]uint64{myCell, neighborCell},
				Plane:     fv,
				Colour:    colour,
				Coplanar:  coplanar,
			})
			faceOf[key] = fid
			c.Edges[e0].ConnFace0 = fid
			c.Edges[e1].ConnFace0 = fid
			c.Edges[e2].ConnFace0 = fid
			c.Cells[myCell].Faces = append(c.Cells[myCell].Faces, fid)
		}
	}
}
