package point

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestIsVertexBuiltFromPlaneExplicit(t *testing.T) {
	chk.PrintTitle("IsVertexBuiltFromPlaneExplicit")
	v := Ref{Kind: Explicit, Idx: [9]uint32{5}}
	if !IsVertexBuiltFromPlane(v, 5, 7, 9) {
		t.Fatal("vertex 5 should be built from a plane naming 5")
	}
	if IsVertexBuiltFromPlane(v, 7, 9, 11) {
		t.Fatal("vertex 5 should not be built from a plane not naming it")
	}
}

func TestIsVertexBuiltFromPlaneLPI(t *testing.T) {
	chk.PrintTitle("IsVertexBuiltFromPlaneLPI")
	// LPI's own plane equals the query plane (any permutation)
	v := Ref{Kind: LPI, Idx: [9]uint32{0, 1, 4, 5, 6}}
	if !IsVertexBuiltFromPlane(v, 6, 4, 5) {
		t.Fatal("LPI should be incident to its own defining plane, any order")
	}
	// LPI's line is a side of the queried plane
	v2 := Ref{Kind: LPI, Idx: [9]uint32{2, 3, 8, 9, 10}}
	if !IsVertexBuiltFromPlane(v2, 2, 3, 99) {
		t.Fatal("LPI whose line endpoints both lie on the queried plane must be incident")
	}
	if IsVertexBuiltFromPlane(v2, 2, 50, 51) {
		t.Fatal("only one line endpoint on the plane is not enough")
	}
}

func TestIsVertexBuiltFromPlaneTPI(t *testing.T) {
	chk.PrintTitle("IsVertexBuiltFromPlaneTPI")
	v := Ref{Kind: TPI, Idx: [9]uint32{0, 1, 2, 3, 4, 5, 6, 7, 8}}
	if !IsVertexBuiltFromPlane(v, 5, 3, 4) {
		t.Fatal("TPI should match when one of its three planes equals the query, any order")
	}
	if IsVertexBuiltFromPlane(v, 10, 11, 12) {
		t.Fatal("TPI should not match an unrelated plane")
	}
}

func TestApproxAndExactLPIAgree(t *testing.T) {
	chk.PrintTitle("ApproxAndExactLPIAgree")
	c := Coords{
		Kind: LPI,
		E0:   XYZ{0, 0, 0}, E1: XYZ{2, 2, 2},
		C0: XYZ{1, 0, 0}, C1: XYZ{1, 1, 0}, C2: XYZ{1, 0, 1},
	}
	xyz, ok := ApproxXYZ(c)
	if !ok {
		t.Fatal("expected a certain approximate result")
	}
	chk.Float64(t, "x", 1e-12, xyz.X, 1.0)
	chk.Float64(t, "y", 1e-12, xyz.Y, 1.0)
	chk.Float64(t, "z", 1e-12, xyz.Z, 1.0)

	exact := ExactXYZ(c)
	if exact.X.Cmp(exact.X) != 0 {
		t.Fatal("exact coordinate must be comparable")
	}
	xf, _ := exact.X.Float64()
	yf, _ := exact.Y.Float64()
	zf, _ := exact.Z.Float64()
	chk.Float64(t, "exact x", 1e-12, xf, 1.0)
	chk.Float64(t, "exact y", 1e-12, yf, 1.0)
	chk.Float64(t, "exact z", 1e-12, zf, 1.0)
}

func TestApproxTPI(t *testing.T) {
	chk.PrintTitle("ApproxTPI")
	// three axis-aligned planes x=1, y=1, z=1 meet at (1,1,1)
	c := Coords{
		Kind: TPI,
		A0:   XYZ{1, 0, 0}, A1: XYZ{1, 1, 0}, A2: XYZ{1, 0, 1},
		B0: XYZ{0, 1, 0}, B1: XYZ{1, 1, 0}, B2: XYZ{0, 1, 1},
		D0: XYZ{0, 0, 1}, D1: XYZ{1, 0, 1}, D2: XYZ{0, 1, 1},
	}
	xyz, ok := ApproxXYZ(c)
	if !ok {
		t.Fatal("expected a certain approximate result")
	}
	chk.Float64(t, "x", 1e-9, xyz.X, 1.0)
	chk.Float64(t, "y", 1e-9, xyz.Y, 1.0)
	chk.Float64(t, "z", 1e-9, xyz.Z, 1.0)
}
