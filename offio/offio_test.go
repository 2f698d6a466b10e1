package offio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
)

func TestWriteThenReadRoundtrip(t *testing.T) {
	chk.PrintTitle("WriteThenReadRoundtrip")
	skin := &label.Skin{
		Verts: []point.XYZ{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Faces: [][]uint32{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "tet.off")
	if err := WriteSkin(path, skin); err != nil {
		t.Fatalf("WriteSkin failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read back written file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("written OFF file is empty")
	}

	mesh, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(mesh.Verts) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(mesh.Verts))
	}
	if len(mesh.Tris) != 4 {
		t.Fatalf("expected 4 triangles, got %d", len(mesh.Tris))
	}
	for i, v := range mesh.Verts {
		want := skin.Verts[i]
		if v.X != want.X || v.Y != want.Y || v.Z != want.Z {
			t.Fatalf("vertex %d: got %+v, want %+v", i, v, want)
		}
	}
}

func TestReadRejectsNonOFF(t *testing.T) {
	chk.PrintTitle("ReadRejectsNonOFF")
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("not an off file\n"), 0644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected Read to reject a non-OFF header")
	}
}

func TestReadTriangulatesQuadFace(t *testing.T) {
	chk.PrintTitle("ReadTriangulatesQuadFace")
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.off")
	contents := "OFF\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	mesh, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(mesh.Tris) != 2 {
		t.Fatalf("expected a quad to fan-triangulate into 2 triangles, got %d", len(mesh.Tris))
	}
}
