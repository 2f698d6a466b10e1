// Package point implements the generic-point sum type used throughout the
// BSP complex: explicit points and the two implicit kinds (LPI, TPI). It
// carries no notion of a vertex arena or index arithmetic — that lives in
// cplx — so it can be unit tested in isolation the way the teacher tests
// shape functions in shp without pulling in inp.
package point

import (
	"math/big"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"
)

// Kind tags which of the three generic-point variants a value holds.
type Kind uint8

const (
	Explicit Kind = iota // three finite float64 coordinates
	LPI                  // line(e0,e1) ∩ plane(c0,c1,c2)
	TPI                  // plane(a) ∩ plane(b) ∩ plane(c), each plane a triple
)

func (k Kind) String() string {
	switch k {
	case Explicit:
		return "explicit"
	case LPI:
		return "lpi"
	case TPI:
		return "tpi"
	default:
		return "unknown"
	}
}

// XYZ is a plain coordinate triple.
type XYZ struct{ X, Y, Z float64 }

// Sub, Cross and Dot are the small exact-in-float64-inputs helpers used by
// both the fast filter and as building blocks before handing off to big.Rat.
func Sub(a, b XYZ) XYZ { return XYZ{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func Cross(a, b XYZ) XYZ {
	return XYZ{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func Dot(a, b XYZ) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Coords holds the explicit-coordinate definition of a generic point,
// regardless of kind. Only the fields relevant to Kind are meaningful.
type Coords struct {
	Kind Kind

	// Explicit
	P XYZ

	// LPI: line through E0,E1; plane through C0,C1,C2
	E0, E1     XYZ
	C0, C1, C2 XYZ

	// TPI: three planes, each a triple of explicit points
	A0, A1, A2 XYZ
	B0, B1, B2 XYZ
	D0, D1, D2 XYZ
}

// Ref is the symbolic identity of a generic point expressed purely as arena
// indices into the owning complex's explicit-vertex space (never pointers,
// never coordinates). isVertexBuiltFromPlane dispatches on this shape alone,
// so two points that merely evaluate to the same coordinates are NOT
// considered "built from" the same plane unless their Ref says so.
type Ref struct {
	Kind Kind

	// Explicit: Idx[0] is the vertex's own index in the explicit-coordinate table.
	// LPI: Idx[0],Idx[1] = e0,e1 (line); Idx[2],Idx[3],Idx[4] = c0,c1,c2 (plane).
	// TPI: Idx[0..2], Idx[3..5], Idx[6..8] = the three planes, 3 indices each.
	Idx [9]uint32
}

// PlaneRef is three explicit-vertex indices identifying a plane by the
// triangle that spans it; order does not matter for equality of the plane
// itself, only for orientation (handled by the caller).
type PlaneRef [3]uint32

// samePlane reports whether two planes reference the same three indices,
// in any order.
func samePlane(a, b PlaneRef) bool {
	return multisetEq3(a[0], a[1], a[2], b[0], b[1], b[2])
}

func multisetEq3(a0, a1, a2, b0, b1, b2 uint32) bool {
	match := func(x, y, z uint32) bool {
		return (a0 == x && a1 == y && a2 == z) ||
			(a0 == x && a1 == z && a2 == y) ||
			(a0 == y && a1 == x && a2 == z) ||
			(a0 == y && a1 == z && a2 == x) ||
			(a0 == z && a1 == x && a2 == y) ||
			(a0 == z && a1 == y && a2 == x)
	}
	return match(b0, b1, b2)
}

// IsVertexBuiltFromPlane returns true when v is provably incident to plane
// (p0,p1,p2) by construction alone, without evaluating any coordinate.
// This mirrors the required optimisation in spec §4.1: it is the only
// mechanism guaranteed to make orient3D return exactly 0 for symbolically
// incident points.
func IsVertexBuiltFromPlane(v Ref, p0, p1, p2 uint32) bool {
	plane := PlaneRef{p0, p1, p2}
	switch v.Kind {
	case Explicit:
		idx := v.Idx[0]
		return idx == p0 || idx == p1 || idx == p2
	case LPI:
		e0, e1 := v.Idx[0], v.Idx[1]
		c0, c1, c2 := v.Idx[2], v.Idx[3], v.Idx[4]
		if samePlane(PlaneRef{c0, c1, c2}, plane) {
			return true
		}
		// the LPI's line is a side of the queried plane iff both its
		// endpoints belong to that plane's vertex set.
		onPlane := func(idx uint32) bool { return idx == p0 || idx == p1 || idx == p2 }
		return onPlane(e0) && onPlane(e1)
	case TPI:
		for k := 0; k < 3; k++ {
			plk := PlaneRef{v.Idx[3*k], v.Idx[3*k+1], v.Idx[3*k+2]}
			if samePlane(plk, plane) {
				return true
			}
		}
		return false
	}
	return false
}

// ApproxXYZ evaluates a generic point to a float64 triple using the fastest
// available formula. certain is false when the construction is numerically
// close to degenerate (the filter could not bound the sign of the
// denominator away from zero) and callers must fall back to ExactXYZ.
func ApproxXYZ(c Coords) (xyz XYZ, certain bool) {
	switch c.Kind {
	case Explicit:
		return c.P, true
	case LPI:
		return lpiApprox(c.E0, c.E1, c.C0, c.C1, c.C2)
	case TPI:
		return tpiApprox(c.A0, c.A1, c.A2, c.B0, c.B1, c.B2, c.D0, c.D1, c.D2)
	}
	return XYZ{}, false
}

// degenEps bounds how small a pivot denominator may be, relative to the
// magnitude of the quantities involved, before we distrust the float64
// filter and escalate to exact rational arithmetic. Built from gosl/num.EPS,
// the teacher's baseline machine epsilon, scaled up the way hyperelast1.go
// scales it for its own Newton tolerances.
var degenEps = 1e5 * num.EPS

func lpiApprox(e0, e1, c0, c1, c2 XYZ) (XYZ, bool) {
	n := Cross(Sub(c1, c0), Sub(c2, c0))
	dir := Sub(e1, e0)
	denom := Dot(n, dir)
	if abs(denom) < degenEps*scale(n, dir) {
		return XYZ{}, false
	}
	t := Dot(n, Sub(c0, e0)) / denom
	return XYZ{e0.X + t*dir.X, e0.Y + t*dir.Y, e0.Z + t*dir.Z}, true
}

// tpiApprox solves [na;nb;nd] * xyz = [da,db,dd] for the three planes' common
// point via la.MatInv, the way shp/algos.go inverts its Jacobian: a 3x3
// MatAlloc, one MatInv call guarded by the degeneracy tolerance, then a
// MatVecMul to apply the inverse to the right-hand side.
func tpiApprox(a0, a1, a2, b0, b1, b2, d0, d1, d2 XYZ) (XYZ, bool) {
	na := Cross(Sub(a1, a0), Sub(a2, a0))
	nb := Cross(Sub(b1, b0), Sub(b2, b0))
	nd := Cross(Sub(d1, d0), Sub(d2, d0))
	da := Dot(na, a0)
	db := Dot(nb, b0)
	dd := Dot(nd, d0)

	tol := degenEps * scale(na, nb, nd)
	a := la.MatAlloc(3, 3)
	a[0][0], a[0][1], a[0][2] = na.X, na.Y, na.Z
	a[1][0], a[1][1], a[1][2] = nb.X, nb.Y, nb.Z
	a[2][0], a[2][1], a[2][2] = nd.X, nd.Y, nd.Z

	ai := la.MatAlloc(3, 3)
	det, err := la.MatInv(ai, a, tol)
	if err != nil || abs(det) < tol {
		return XYZ{}, false
	}

	rhs := []float64{da, db, dd}
	xyz := make([]float64, 3)
	la.MatVecMul(xyz, 1, ai, rhs)
	return XYZ{xyz[0], xyz[1], xyz[2]}, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func scale(vs ...XYZ) float64 {
	s := 1.0
	for _, v := range vs {
		m := abs(v.X) + abs(v.Y) + abs(v.Z)
		if m > s {
			s = m
		}
	}
	return s
}

// ---- exact rational evaluation (fallback when ApproxXYZ is uncertain) ----

// Rat3 is an exact rational coordinate triple.
type Rat3 struct{ X, Y, Z *big.Rat }

func ratXYZ(p XYZ) Rat3 {
	return Rat3{big.NewRat(1, 1).SetFloat64(p.X), big.NewRat(1, 1).SetFloat64(p.Y), big.NewRat(1, 1).SetFloat64(p.Z)}
}

func ratSub(a, b Rat3) Rat3 {
	return Rat3{
		new(big.Rat).Sub(a.X, b.X),
		new(big.Rat).Sub(a.Y, b.Y),
		new(big.Rat).Sub(a.Z, b.Z),
	}
}

func ratDot(a, b Rat3) *big.Rat {
	x := new(big.Rat).Mul(a.X, b.X)
	y := new(big.Rat).Mul(a.Y, b.Y)
	z := new(big.Rat).Mul(a.Z, b.Z)
	s := new(big.Rat).Add(x, y)
	return s.Add(s, z)
}

func ratCross(a, b Rat3) Rat3 {
	m := func(p, q, r, s *big.Rat) *big.Rat {
		t1 := new(big.Rat).Mul(p, q)
		t2 := new(big.Rat).Mul(r, s)
		return t1.Sub(t1, t2)
	}
	return Rat3{
		m(a.Y, b.Z, a.Z, b.Y),
		m(a.Z, b.X, a.X, b.Z),
		m(a.X, b.Y, a.Y, b.X),
	}
}

func ratDet3(r0, r1, r2 Rat3) *big.Rat {
	t1 := new(big.Rat).Mul(r1.Y, r2.Z)
	t2 := new(big.Rat).Mul(r1.Z, r2.Y)
	minor0 := new(big.Rat).Sub(t1, t2)
	minor0.Mul(minor0, r0.X)

	t3 := new(big.Rat).Mul(r1.X, r2.Z)
	t4 := new(big.Rat).Mul(r1.Z, r2.X)
	minor1 := new(big.Rat).Sub(t3, t4)
	minor1.Mul(minor1, r0.Y)

	t5 := new(big.Rat).Mul(r1.X, r2.Y)
	t6 := new(big.Rat).Mul(r1.Y, r2.X)
	minor2 := new(big.Rat).Sub(t5, t6)
	minor2.Mul(minor2, r0.Z)

	out := new(big.Rat).Sub(minor0, minor1)
	return out.Add(out, minor2)
}

// ExactXYZ evaluates a generic point's coordinates exactly as big.Rat
// fractions. Since float64 values are themselves exactly representable as
// rationals, and every operation used to build LPI/TPI coordinates
// (subtraction, cross product, dot product, division) is exact over the
// rationals, the result is the true symbolic coordinate of the point: no
// rounding occurs anywhere in this path.
func ExactXYZ(c Coords) Rat3 {
	switch c.Kind {
	case Explicit:
		return ratXYZ(c.P)
	case LPI:
		e0, e1 := ratXYZ(c.E0), ratXYZ(c.E1)
		c0, c1, c2 := ratXYZ(c.C0), ratXYZ(c.C1), ratXYZ(c.C2)
		n := ratCross(ratSub(c1, c0), ratSub(c2, c0))
		dir := ratSub(e1, e0)
		denom := ratDot(n, dir)
		t := new(big.Rat).Quo(ratDot(n, ratSub(c0, e0)), denom)
		return Rat3{
			new(big.Rat).Add(e0.X, new(big.Rat).Mul(t, dir.X)),
			new(big.Rat).Add(e0.Y, new(big.Rat).Mul(t, dir.Y)),
			new(big.Rat).Add(e0.Z, new(big.Rat).Mul(t, dir.Z)),
		}
	case TPI:
		a0, a1, a2 := ratXYZ(c.A0), ratXYZ(c.A1), ratXYZ(c.A2)
		b0, b1, b2 := ratXYZ(c.B0), ratXYZ(c.B1), ratXYZ(c.B2)
		d0, d1, d2 := ratXYZ(c.D0), ratXYZ(c.D1), ratXYZ(c.D2)
		na := ratCross(ratSub(a1, a0), ratSub(a2, a0))
		nb := ratCross(ratSub(b1, b0), ratSub(b2, b0))
		nd := ratCross(ratSub(d1, d0), ratSub(d2, d0))
		da := ratDot(na, a0)
		db := ratDot(nb, b0)
		dd := ratDot(nd, d0)
		det := ratDet3(na, nb, nd)
		cx := ratDet3(Rat3{da, na.Y, na.Z}, Rat3{db, nb.Y, nb.Z}, Rat3{dd, nd.Y, nd.Z})
		cy := ratDet3(Rat3{na.X, da, na.Z}, Rat3{nb.X, db, nb.Z}, Rat3{nd.X, dd, nd.Z})
		cz := ratDet3(Rat3{na.X, na.Y, da}, Rat3{nb.X, nb.Y, db}, Rat3{nd.X, nd.Y, dd})
		return Rat3{
			new(big.Rat).Quo(cx, det),
			new(big.Rat).Quo(cy, det),
			new(big.Rat).Quo(cz, det),
		}
	}
	return Rat3{big.NewRat(0, 1), big.NewRat(0, 1), big.NewRat(0, 1)}
}
