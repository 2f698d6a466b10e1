package tetmesh

// SynthesizeVirtualConstraints implements the (c) collaborator named in
// spec §1: closing the manifold envelope. Grounded on
// makePolyhedralMesh.cpp, which adds one constraint per convex-hull face of
// each input solid that isn't already spanned by a real input triangle —
// otherwise the boolean's flood fill (label package) could leak through an
// unconstrained hull face. Returned triangles are meant to be appended
// after all real constraints; the caller records their starting index as
// Complex.FirstVirtual.
func SynthesizeVirtualConstraints(t *Tetrahedralization, existing []Triangle) []Triangle {
	covered := make(map[triKey]bool, len(existing))
	for _, k := range existing {
		covered[sortedTri(k)] = true
	}
	var out []Triangle
	seen := map[triKey]bool{}
	for ti, tv := range t.TetVerts {
		if t.IsGhost(uint64(ti)) {
			continue
		}
		for fi := 0; fi < 4; fi++ {
			nb := t.TetNeighbors[ti][fi]
			if nb == NoIndex || !t.IsGhost(nb) {
				continue
			}
			tri := Triangle{
				V0: tv[TetFaceLocalVerts[fi][0]],
				V1: tv[TetFaceLocalVerts[fi][1]],
				V2: tv[TetFaceLocalVerts[fi][2]],
			}
			key := sortedTri(tri)
			if covered[key] || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tri)
		}
	}
	return out
}

type triKey [3]uint32

func sortedTri(t Triangle) triKey {
	v := [3]uint32{t.V0, t.V1, t.V2}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if v[j] < v[i] {
				v[i], v[j] = v[j], v[i]
			}
		}
	}
	return triKey(v)
}
