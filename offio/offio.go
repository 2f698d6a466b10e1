// Package offio reads and writes the OFF (Object File Format) subset used
// as this module's mesh interchange format: a header line "OFF", a counts
// line "nverts nfaces nedges", nverts coordinate lines, then nfaces face
// lines "k v0 v1 ... v(k-1)". Grounded on the teacher's file I/O style
// (gosl/io's Ff/WriteFile buffer-building pattern, seen in tools/GenVtu.go)
// applied to this module's own format; OFF's line grammar has no ecosystem
// parser in the example pack, so the read side is plain bufio/strconv
// (see DESIGN.md).
package offio

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Mesh is an input triangle soup: explicit vertices plus 0-based triangle
// indices into Verts.
type Mesh struct {
	Verts []point.XYZ
	Tris  [][3]uint32
}

// Read parses an OFF file's vertex/face lists. Faces wider than a triangle
// are fan-triangulated around their first vertex.
func Read(path string) (*Mesh, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)

	nextLine := func() (string, bool) {
		for sc.Scan() {
			l := strings.TrimSpace(sc.Text())
			if l == "" || strings.HasPrefix(l, "#") {
				continue
			}
			return l, true
		}
		return "", false
	}

	header, ok := nextLine()
	if !ok {
		return nil, chk.Err("offio: empty file %q", path)
	}
	if header != "OFF" && !strings.HasPrefix(header, "OFF ") {
		return nil, chk.Err("offio: %q is not an OFF file (got %q)", path, header)
	}

	countsLine := header
	if header == "OFF" {
		var hasCounts bool
		countsLine, hasCounts = nextLine()
		if !hasCounts {
			return nil, chk.Err("offio: %q missing counts line", path)
		}
	} else {
		countsLine = strings.TrimSpace(strings.TrimPrefix(header, "OFF"))
	}
	fields := strings.Fields(countsLine)
	if len(fields) < 2 {
		return nil, chk.Err("offio: %q malformed counts line %q", path, countsLine)
	}
	nv, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, chk.Err("offio: %q bad vertex count: %v", path, err)
	}
	nf, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, chk.Err("offio: %q bad face count: %v", path, err)
	}

	m := &Mesh{Verts: make([]point.XYZ, 0, nv)}
	for i := 0; i < nv; i++ {
		l, ok := nextLine()
		if !ok {
			return nil, chk.Err("offio: %q truncated vertex list", path)
		}
		f := strings.Fields(l)
		if len(f) < 3 {
			return nil, chk.Err("offio: %q malformed vertex line %q", path, l)
		}
		x, _ := strconv.ParseFloat(f[0], 64)
		y, _ := strconv.ParseFloat(f[1], 64)
		z, _ := strconv.ParseFloat(f[2], 64)
		m.Verts = append(m.Verts, point.XYZ{X: x, Y: y, Z: z})
	}

	for i := 0; i < nf; i++ {
		l, ok := nextLine()
		if !ok {
			return nil, chk.Err("offio: %q truncated face list", path)
		}
		f := strings.Fields(l)
		if len(f) < 1 {
			return nil, chk.Err("offio: %q malformed face line %q", path, l)
		}
		k, _ := strconv.Atoi(f[0])
		if len(f) < k+1 {
			return nil, chk.Err("offio: %q face line %q shorter than declared degree %d", path, l, k)
		}
		idx := make([]uint32, k)
		for j := 0; j < k; j++ {
			v, _ := strconv.Atoi(f[j+1])
			idx[j] = uint32(v)
		}
		for j := 1; j+1 < k; j++ {
			m.Tris = append(m.Tris, [3]uint32{idx[0], idx[j], idx[j+1]})
		}
	}
	return m, nil
}

// WriteSkin writes a boolean result's boundary as an OFF file, one polygon
// line per face (no forced triangulation — OFF natively supports n-gons).
func WriteSkin(path string, skin *label.Skin) error {
	var buf bytes.Buffer
	io.Ff(&buf, "OFF\n")
	io.Ff(&buf, "%d %d 0\n", len(skin.Verts), len(skin.Faces))
	for _, v := range skin.Verts {
		io.Ff(&buf, "%.17g %.17g %.17g\n", v.X, v.Y, v.Z)
	}
	for _, f := range skin.Faces {
		io.Ff(&buf, "%d", len(f))
		for _, idx := range f {
			io.Ff(&buf, " %d", idx)
		}
		io.Ff(&buf, "\n")
	}
	return io.WriteFile(path, &buf)
}
