package tetmesh

import (
	"sort"

	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
)

// internal working tet: four vertex ids, where ids >= realCount refer to
// one of the four synthetic super-tetrahedron corners.
type wtet struct {
	v       [4]uint32
	removed bool
}

// Build computes a Delaunay tetrahedralization of the given points via
// incremental Bowyer-Watson insertion with a bounding super-tetrahedron,
// then closes the convex hull with ghost tets. ids[i] is the complex
// vertex index to record for points[i]; the two slices must be parallel.
//
// This stage is declared an external collaborator by spec §1(a); exactness
// is not required here (only the split/predicate layer must be exact), so
// plain float64 in-sphere tests are used, matching the scope boundary.
func Build(points []point.XYZ, ids []uint32) *Tetrahedralization {
	if len(points) < 4 {
		chk.Panic("tetmesh: need at least 4 points, got %d", len(points))
	}
	n := uint32(len(points))

	// bounding super-tetrahedron, coordinates far outside the input's bbox
	lo, hi := points[0], points[0]
	for _, p := range points {
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
		lo.Z, hi.Z = min(lo.Z, p.Z), max(hi.Z, p.Z)
	}
	center := point.XYZ{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2, Z: (lo.Z + hi.Z) / 2}
	span := max(max(hi.X-lo.X, hi.Y-lo.Y), hi.Z-lo.Z) + 1
	r := span * 20

	super := [4]point.XYZ{
		{X: center.X - r, Y: center.Y - r, Z: center.Z - r},
		{X: center.X + r, Y: center.Y - r, Z: center.Z - r},
		{X: center.X, Y: center.Y + r, Z: center.Z - r},
		{X: center.X, Y: center.Y, Z: center.Z + r},
	}
	// super-vertex ids are n, n+1, n+2, n+3
	allCoords := append(append([]point.XYZ{}, points...), super[:]...)
	superID := func(k int) uint32 { return n + uint32(k) }

	tets := []wtet{{v: [4]uint32{superID(0), superID(1), superID(2), superID(3)}}}
	fixOrientation(&tets[0], allCoords)

	for i := uint32(0); i < n; i++ {
		insertPoint(&tets, allCoords, i)
	}

	// drop tets touching a super vertex
	var realTets [][4]uint32
	for _, t := range tets {
		if t.removed {
			continue
		}
		if touchesSuper(t, n) {
			continue
		}
		realTets = append(realTets, t.v)
	}
	if len(realTets) == 0 {
		chk.Panic("tetmesh: triangulation collapsed to nothing")
	}

	allVerts := append(realTets, closeHullWithGhosts(realTets)...)
	neighbors := computeNeighbors(allVerts)

	// translate local point indices to caller-provided complex vertex ids
	out := make([][4]uint32, len(allVerts))
	for i, tv := range allVerts {
		var o [4]uint32
		for k := 0; k < 4; k++ {
			if tv[k] == NoVertex32 {
				o[k] = NoVertex32
			} else {
				o[k] = ids[tv[k]]
			}
		}
		out[i] = o
	}
	return &Tetrahedralization{TetVerts: out, TetNeighbors: neighbors}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func touchesSuper(t wtet, n uint32) bool {
	for _, v := range t.v {
		if v >= n {
			return true
		}
	}
	return false
}

func signedVolume6(a, b, c, d point.XYZ) float64 {
	ax, ay, az := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	bx, by, bz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	cx, cy, cz := d.X-a.X, d.Y-a.Y, d.Z-a.Z
	return ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
}

// fixOrientation ensures tet.v is positively oriented (signedVolume6 > 0).
func fixOrientation(t *wtet, coords []point.XYZ) {
	a, b, c, d := coords[t.v[0]], coords[t.v[1]], coords[t.v[2]], coords[t.v[3]]
	if signedVolume6(a, b, c, d) < 0 {
		t.v[1], t.v[2] = t.v[2], t.v[1]
	}
}

// inCircumsphere reports whether point p lies strictly inside the
// circumsphere of tet (a,b,c,d), assumed positively oriented.
func inCircumsphere(a, b, c, d, p point.XYZ) bool {
	sub := func(u, v point.XYZ) [3]float64 { return [3]float64{u.X - v.X, u.Y - v.Y, u.Z - v.Z} }
	sq := func(v [3]float64) float64 { return v[0]*v[0] + v[1]*v[1] + v[2]*v[2] }
	pa, pb, pc, pd := sub(a, p), sub(b, p), sub(c, p), sub(d, p)
	// 4x4 determinant of [pa, |pa|^2; pb, |pb|^2; pc, |pc|^2; pd, |pd|^2]
	det3 := func(r0, r1, r2 [3]float64) float64 {
		return r0[0]*(r1[1]*r2[2]-r1[2]*r2[1]) -
			r0[1]*(r1[0]*r2[2]-r1[2]*r2[0]) +
			r0[2]*(r1[0]*r2[1]-r1[1]*r2[0])
	}
	m := func(rows [4][3]float64, sqs [4]float64, skip int) float64 {
		var r [3][3]float64
		idx := 0
		for i := 0; i < 4; i++ {
			if i == skip {
				continue
			}
			r[idx] = rows[i]
			idx++
		}
		_ = sqs
		return det3(r[0], r[1], r[2])
	}
	rows := [4][3]float64{pa, pb, pc, pd}
	sqs := [4]float64{sq(pa), sq(pb), sq(pc), sq(pd)}
	// expand along the |.|^2 column using cofactors
	det := sqs[0]*m(rows, sqs, 0) - sqs[1]*m(rows, sqs, 1) + sqs[2]*m(rows, sqs, 2) - sqs[3]*m(rows, sqs, 3)
	return det > 0
}

func insertPoint(tets *[]wtet, coords []point.XYZ, pid uint32) {
	p := coords[pid]
	type faceKey [3]uint32
	badFaces := map[faceKey]int{} // faceKey -> occurrence count among bad tets

	bad := make([]bool, len(*tets))
	for i, t := range *tets {
		if t.removed {
			continue
		}
		a, b, c, d := coords[t.v[0]], coords[t.v[1]], coords[t.v[2]], coords[t.v[3]]
		if inCircumsphere(a, b, c, d, p) {
			bad[i] = true
			for fi := 0; fi < 4; fi++ {
				fv := [3]uint32{t.v[TetFaceLocalVerts[fi][0]], t.v[TetFaceLocalVerts[fi][1]], t.v[TetFaceLocalVerts[fi][2]]}
				key := sortedFace(fv)
				badFaces[key]++
			}
		}
	}

	// boundary faces of the cavity: those seen exactly once among bad tets,
	// recovered with their original (non-sorted) orientation from the tet
	// that contributed them.
	type boundaryFace struct {
		v [3]uint32
	}
	var boundary []boundaryFace
	for i, t := range *tets {
		if !bad[i] {
			continue
		}
		for fi := 0; fi < 4; fi++ {
			fv := [3]uint32{t.v[TetFaceLocalVerts[fi][0]], t.v[TetFaceLocalVerts[fi][1]], t.v[TetFaceLocalVerts[fi][2]]}
			if badFaces[sortedFace(fv)] == 1 {
				boundary = append(boundary, boundaryFace{v: fv})
			}
		}
		(*tets)[i].removed = true
	}

	for _, f := range boundary {
		nt := wtet{v: [4]uint32{f.v[0], f.v[1], f.v[2], pid}}
		fixOrientation(&nt, coords)
		*tets = append(*tets, nt)
	}
}

func sortedFace(v [3]uint32) [3]uint32 {
	s := v[:]
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return [3]uint32{s[0], s[1], s[2]}
}

// closeHullWithGhosts creates one ghost tet per convex-hull face (a face
// that appears in exactly one real tet), CCW as seen from outside.
func closeHullWithGhosts(real [][4]uint32) [][4]uint32 {
	type faceKey [3]uint32
	count := map[faceKey]int{}
	orient := map[faceKey][3]uint32{}
	for _, t := range real {
		for fi := 0; fi < 4; fi++ {
			fv := [3]uint32{t[TetFaceLocalVerts[fi][0]], t[TetFaceLocalVerts[fi][1]], t[TetFaceLocalVerts[fi][2]]}
			key := faceKey(sortedFace(fv))
			count[key]++
			orient[key] = fv
		}
	}
	var ghosts [][4]uint32
	for key, c := range count {
		if c == 1 {
			fv := orient[key]
			// fv's normal points into the real tet, so the reversed
			// winding is CCW as seen from outside the hull.
			ghosts = append(ghosts, [4]uint32{fv[0], fv[2], fv[1], NoVertex32})
		}
	}
	return ghosts
}

// computeNeighbors finds, for every tet and every local face, the index of
// the tet (real or ghost) sharing that face, via a global face-keyed map.
// This is a simpler (if less incremental) alternative to threading
// neighbor pointers through the cavity retriangulation above.
func computeNeighbors(tets [][4]uint32) [][4]uint64 {
	type faceKey [3]uint32
	owners := map[faceKey][]struct {
		tet   int
		local int
	}{}
	for ti, t := range tets {
		nFaces := 4
		if t[3] == NoVertex32 {
			nFaces = 1 // a ghost only has its one real face
		}
		for fi := 0; fi < nFaces; fi++ {
			var fv [3]uint32
			if t[3] == NoVertex32 {
				fv = [3]uint32{t[0], t[1], t[2]}
			} else {
				fv = [3]uint32{t[TetFaceLocalVerts[fi][0]], t[TetFaceLocalVerts[fi][1]], t[TetFaceLocalVerts[fi][2]]}
			}
			key := faceKey(sortedFace(fv))
			owners[key] = append(owners[key], struct {
				tet   int
				local int
			}{ti, fi})
		}
	}
	out := make([][4]uint64, len(tets))
	for i := range out {
		out[i] = [4]uint64{NoIndex, NoIndex, NoIndex, NoIndex}
	}
	for _, os := range owners {
		if len(os) == 2 {
			out[os[0].tet][os[0].local] = uint64(os[1].tet)
			out[os[1].tet][os[1].local] = uint64(os[0].tet)
		}
	}
	return out
}
