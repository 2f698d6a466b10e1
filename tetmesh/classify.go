package tetmesh

import "github.com/cpmech/bspcsg/point"

// Triangle is a constraint triangle expressed as three complex vertex ids.
type Triangle struct {
	V0, V1, V2 uint32
}

// classifyEps is the tolerance used by this (out-of-scope, non-exact)
// classification pass; the split stage re-derives every incidence decision
// exactly, so over-inclusion here is safe and under-inclusion is not.
const classifyEps = 1e-9

// Classify builds the ConstraintMap collaborator output: for each non-ghost
// tet, the constraints whose plane straddles its interior (candidates for
// "improperly piercing"), and per local face, the constraints coplanar with
// that face's plane. coordOf resolves a complex vertex id to coordinates.
func Classify(t *Tetrahedralization, coordOf func(id uint32) point.XYZ, constraints []Triangle) *ConstraintMap {
	n := len(t.TetVerts)
	cm := &ConstraintMap{
		Pending:      make([][]uint32, n),
		FaceCoplanar: make([][4][]uint32, n),
	}
	for ti, tv := range t.TetVerts {
		if t.IsGhost(uint64(ti)) {
			continue
		}
		verts := [4]point.XYZ{coordOf(tv[0]), coordOf(tv[1]), coordOf(tv[2]), coordOf(tv[3])}
		for ci, k := range constraints {
			a, b, c := coordOf(k.V0), coordOf(k.V1), coordOf(k.V2)
			if straddlesPlane(verts, a, b, c) {
				cm.Pending[ti] = append(cm.Pending[ti], uint32(ci))
			}
			for fi := 0; fi < 4; fi++ {
				fa := verts[TetFaceLocalVerts[fi][0]]
				fb := verts[TetFaceLocalVerts[fi][1]]
				fc := verts[TetFaceLocalVerts[fi][2]]
				if coplanarTriangles(fa, fb, fc, a, b, c) {
					cm.FaceCoplanar[ti][fi] = append(cm.FaceCoplanar[ti][fi], uint32(ci))
				}
			}
		}
	}
	return cm
}

func straddlesPlane(verts [4]point.XYZ, a, b, c point.XYZ) bool {
	pos, neg := false, false
	for _, v := range verts {
		d := signedVolume6(a, b, c, v)
		if d > classifyEps {
			pos = true
		} else if d < -classifyEps {
			neg = true
		}
	}
	return pos && neg
}

func coplanarTriangles(fa, fb, fc, a, b, c point.XYZ) bool {
	return abs(signedVolume6(fa, fb, fc, a)) < classifyEps &&
		abs(signedVolume6(fa, fb, fc, b)) < classifyEps &&
		abs(signedVolume6(fa, fb, fc, c)) < classifyEps
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
