package main

import (
	"os"
	"testing"
)

// TestE2EBoxExample exercises the full pipeline: script source → engine →
// scene → tessellate → meshes.
func TestE2EBoxExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/box.facet")
	if err != nil {
		t.Fatalf("failed to read box.facet: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if len(result.Meshes) != 4 {
		t.Fatalf("expected 4 meshes, got %d", len(result.Meshes))
	}

	expected := []string{"body", "plate", "tile", "outline"}
	for i, m := range result.Meshes {
		if m.Name != expected[i] {
			t.Errorf("mesh %d name = %q, want %q", i, m.Name, expected[i])
		}

		// Each mesh must have non-empty geometry.
		if len(m.Vertices) == 0 {
			t.Errorf("object %q: no vertices", m.Name)
		}
		if len(m.Normals) != len(m.Vertices) {
			t.Errorf("object %q: %d normals for %d vertex floats", m.Name, len(m.Normals), len(m.Vertices))
		}
		if len(m.Colors) != len(m.Vertices) {
			t.Errorf("object %q: %d colors for %d vertex floats", m.Name, len(m.Colors), len(m.Vertices))
		}
		if len(m.Indices) == 0 {
			t.Errorf("object %q: no indices", m.Name)
		}

		// Must have a color assigned.
		if m.Color == "" {
			t.Errorf("object %q: no color assigned", m.Name)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(defobj \"test\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2ESingleCube ensures a minimal single-object source renders one mesh.
func TestE2ESingleCube(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(defobj "c" (cube 2))`)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if m.Name != "c" {
		t.Errorf("expected object name 'c', got %q", m.Name)
	}
	if n := len(m.Indices) / 3; n != 12 {
		t.Errorf("triangles = %d, want 12", n)
	}
}
