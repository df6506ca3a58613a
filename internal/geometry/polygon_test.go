package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestVertices_CountAndRadius(t *testing.T) {
	for _, sides := range []int{3, 4, 5, 6, 8, 12, 100} {
		vertices, err := Vertices(sides, 50, 50, 40, 0)
		if err != nil {
			t.Fatalf("Vertices(%d sides) failed: %v", sides, err)
		}
		if len(vertices) != sides {
			t.Fatalf("sides=%d: got %d vertices", sides, len(vertices))
		}
		for i, v := range vertices {
			dist := math.Hypot(v.X-50, v.Y-50)
			if math.Abs(dist-40) > 1e-9 {
				t.Errorf("sides=%d vertex %d: distance %g, want 40", sides, i, dist)
			}
		}
	}
}

func TestVertices_Distinct(t *testing.T) {
	vertices, err := Vertices(6, 0, 0, 10, 0)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	for i := range vertices {
		next := vertices[(i+1)%len(vertices)]
		if math.Hypot(vertices[i].X-next.X, vertices[i].Y-next.Y) < 1e-9 {
			t.Errorf("vertices %d and %d coincide", i, (i+1)%len(vertices))
		}
	}
}

func TestVertices_FirstVertexAtTop(t *testing.T) {
	vertices, err := Vertices(6, 100, 100, 50, 0)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	v0 := vertices[0]
	if math.Abs(v0.X-100) > 1e-9 || math.Abs(v0.Y-50) > 1e-9 {
		t.Errorf("vertex 0: got (%g, %g), want (100, 50)", v0.X, v0.Y)
	}
	// Clockwise on screen: the next vertex moves right.
	if vertices[1].X <= v0.X {
		t.Errorf("vertex 1 at x=%g, expected right of vertex 0 (clockwise)", vertices[1].X)
	}
}

func TestVertices_RotationModulo(t *testing.T) {
	base, err := Vertices(5, 10, 10, 8, 30)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	wrapped, err := Vertices(5, 10, 10, 8, 390)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	for i := range base {
		if math.Abs(base[i].X-wrapped[i].X) > 1e-9 || math.Abs(base[i].Y-wrapped[i].Y) > 1e-9 {
			t.Errorf("vertex %d: rotation 390 != rotation 30", i)
		}
	}
}

func TestVertices_Rotation90(t *testing.T) {
	// Rotating a square 90 degrees maps each vertex onto the next.
	base, err := Vertices(4, 0, 0, 10, 0)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	rotated, err := Vertices(4, 0, 0, 10, 90)
	if err != nil {
		t.Fatalf("Vertices failed: %v", err)
	}
	for i := range base {
		want := base[(i+1)%4]
		if math.Abs(rotated[i].X-want.X) > 1e-9 || math.Abs(rotated[i].Y-want.Y) > 1e-9 {
			t.Errorf("rotated vertex %d: got (%g, %g), want (%g, %g)",
				i, rotated[i].X, rotated[i].Y, want.X, want.Y)
		}
	}
}

func TestVertices_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		sides  int
		radius float64
	}{
		{"two sides", 2, 10},
		{"zero sides", 0, 10},
		{"negative sides", -3, 10},
		{"zero radius", 6, 0},
		{"negative radius", 6, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Vertices(tt.sides, 0, 0, tt.radius, 0)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("got %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
