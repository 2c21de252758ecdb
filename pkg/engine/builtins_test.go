package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cube :size 2)`,
			expect: `(cube "__kw_size" 2)`,
		},
		{
			name:   "multiple keywords",
			input:  `(inset m :face 1 :amount 0.5)`,
			expect: `(inset m "__kw_face" 1 "__kw_amount" 0.5)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(hot-points :times-two ref)`,
			expect: `(hot_points "__kw_times-two" ref)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:face-index`,
			expect: `"__kw_face-index"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Script helpers
// ---------------------------------------------------------------------------

// mustEval evaluates source and fails the test on any error.
func mustEval(t *testing.T, source string) *scene.Scene {
	t.Helper()
	s, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil scene")
	}
	return s
}

// evalErrors evaluates source that is expected to fail and returns the
// joined messages.
func evalErrors(t *testing.T, source string) string {
	t.Helper()
	s, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil scene on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	msgs := make([]string, len(evalErrs))
	for i, e := range evalErrs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

func objMesh(t *testing.T, s *scene.Scene, name string) *mesh.Mesh {
	t.Helper()
	o := s.Lookup(name)
	if o == nil {
		t.Fatalf("expected object named %q", name)
	}
	return o.Mesh
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func TestCubeAndSquare(t *testing.T) {
	s := mustEval(t, `
(defobj "c" (cube 2))
(defobj "sq" (square :size 4))
(defobj "unit" (cube))
`)
	if d := cmp.Diff([]string{"c", "sq", "unit"}, s.Names()); d != "" {
		t.Errorf("names:\n%s", d)
	}

	c := objMesh(t, s, "c")
	if len(c.Points) != 8 || len(c.Faces) != 6 {
		t.Errorf("cube = %d points, %d faces; want 8, 6", len(c.Points), len(c.Faces))
	}
	if d := cmp.Diff(geom.XYZ(2, 2, 2), c.Size(), approx); d != "" {
		t.Errorf("cube size:\n%s", d)
	}

	sq := objMesh(t, s, "sq")
	if d := cmp.Diff(geom.XYZ(4, 4, 0), sq.Size(), approx); d != "" {
		t.Errorf("square size:\n%s", d)
	}
	if d := cmp.Diff(geom.XYZ(1, 1, 1), objMesh(t, s, "unit").Size(), approx); d != "" {
		t.Errorf("default cube size:\n%s", d)
	}
}

func TestPolygonLineSegmentPoint(t *testing.T) {
	s := mustEval(t, `
(defobj "tri" (polygon (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0)))
(defobj "ln" (line (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0)))
(defobj "seg" (segment (vec3 0 0 0) (vec3 0 0 2.5)))
(defobj "pt" (point (vec3 10.5 20.3 30.7)))
`)
	tests := []struct {
		name          string
		points, faces int
	}{
		{"tri", 3, 1},
		{"ln", 3, 0},
		{"seg", 2, 1},
		{"pt", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := objMesh(t, s, tt.name)
			if len(m.Points) != tt.points || len(m.Faces) != tt.faces {
				t.Errorf("got %d points, %d faces; want %d, %d", len(m.Points), len(m.Faces), tt.points, tt.faces)
			}
		})
	}

	if d := cmp.Diff(geom.XYZ(10.5, 20.3, 30.7), objMesh(t, s, "pt").Points[0].Vec); d != "" {
		t.Errorf("point:\n%s", d)
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	msg := evalErrors(t, `(polygon (vec3 0 0 0) (vec3 1 0 0))`)
	if !strings.Contains(msg, "at least 3 points") {
		t.Errorf("message = %q", msg)
	}
}

func TestVec3WrongArity(t *testing.T) {
	evalErrors(t, `(vec3 1 2)`)
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

func TestTransforms(t *testing.T) {
	s := mustEval(t, `
(def moved (translate (cube 2) (vec3 10 0 0)))
(defobj "moved" moved)
(defobj "big" (scale (cube 1) :by 3))
(defobj "turned" (rotate (square 2) :by (vec3 0 0 90)))
`)
	b := objMesh(t, s, "moved").Bounds()
	if d := cmp.Diff(geom.XYZ(9, -1, -1), b.Min, approx); d != "" {
		t.Errorf("translated min:\n%s", d)
	}
	if d := cmp.Diff(geom.XYZ(3, 3, 3), objMesh(t, s, "big").Size(), approx); d != "" {
		t.Errorf("scaled size:\n%s", d)
	}
	if d := cmp.Diff(geom.XYZ(2, 2, 0), objMesh(t, s, "turned").Size(), cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Errorf("rotated size:\n%s", d)
	}
}

func TestColor(t *testing.T) {
	s := mustEval(t, `
(defobj "r" (color (cube 1) :red))
(defobj "b" (color (square 1) :color :blue))
`)
	for name, want := range map[string]mesh.Color{"r": mesh.Red, "b": mesh.Blue} {
		for i, p := range objMesh(t, s, name).Points {
			if p.Color != want {
				t.Errorf("%s point %d color = %v, want %v", name, i, p.Color, want)
			}
		}
	}

	msg := evalErrors(t, `(color (cube 1) :mauve)`)
	if !strings.Contains(msg, "unknown color") {
		t.Errorf("message = %q", msg)
	}
}

func TestCloneKeepsOriginal(t *testing.T) {
	s := mustEval(t, `
(def base (cube 1))
(defobj "smooth" (subdivide (clone base)))
(defobj "base" base)
`)
	if n := len(objMesh(t, s, "base").Points); n != 8 {
		t.Errorf("base points = %d, want 8", n)
	}
	if n := len(objMesh(t, s, "smooth").Points); n != 26 {
		t.Errorf("smooth points = %d, want 26", n)
	}
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func TestSubdivide(t *testing.T) {
	s := mustEval(t, `
(defobj "once" (subdivide (cube 1)))
(defobj "twice" (subdivide (cube 1) :times 2))
`)
	tests := []struct {
		name          string
		points, faces int
	}{
		{"once", 26, 24},
		{"twice", 98, 96},
	}
	for _, tt := range tests {
		m := objMesh(t, s, tt.name)
		if len(m.Points) != tt.points || len(m.Faces) != tt.faces {
			t.Errorf("%s = %d points, %d faces; want %d, %d",
				tt.name, len(m.Points), len(m.Faces), tt.points, tt.faces)
		}
	}
}

func TestHotpoints(t *testing.T) {
	s := mustEval(t, `
(defobj "h1" (hotpoints (square 2)))
(defobj "h2" (hotpoints (square 2) :times 2))
`)
	if n := len(objMesh(t, s, "h1").Points); n != 8 {
		t.Errorf("h1 points = %d, want 8", n)
	}
	if n := len(objMesh(t, s, "h2").Points); n != 16 {
		t.Errorf("h2 points = %d, want 16", n)
	}
}

func TestExtrude(t *testing.T) {
	s := mustEval(t, `(defobj "box" (extrude (square 2) :height 3))`)
	m := objMesh(t, s, "box")
	if len(m.Points) != 8 || len(m.Faces) != 6 {
		t.Errorf("extrude = %d points, %d faces; want 8, 6", len(m.Points), len(m.Faces))
	}
	if d := cmp.Diff(geom.XYZ(2, 2, 3), m.Size(), approx); d != "" {
		t.Errorf("size:\n%s", d)
	}
}

func TestInset(t *testing.T) {
	s := mustEval(t, `
(defobj "panel" (inset (square 2) :amount 0.5))
(defobj "box" (inset (cube 2) :face 1 :amount 0.25))
`)
	panel := objMesh(t, s, "panel")
	if len(panel.Points) != 8 || len(panel.Faces) != 5 {
		t.Errorf("panel = %d points, %d faces; want 8, 5", len(panel.Points), len(panel.Faces))
	}
	if d := cmp.Diff(geom.XYZ(-0.5, -0.5, 0), panel.Points[panel.Faces[0][0]].Vec, approx); d != "" {
		t.Errorf("inner corner:\n%s", d)
	}
	if n := len(objMesh(t, s, "box").Faces); n != 10 {
		t.Errorf("box faces = %d, want 10", n)
	}
}

func TestSubtract(t *testing.T) {
	s := mustEval(t, `
(def cutter (translate (square 2) (vec3 1 1 0)))
(defobj "cut" (subtract (square 2) cutter))
(defobj "cutter" cutter)
`)
	cut := objMesh(t, s, "cut")
	want := []geom.Vec{
		geom.XYZ(-1, -1, 0), geom.XYZ(1, -1, 0), geom.XYZ(1, 0, 0),
		geom.XYZ(0, 0, 0), geom.XYZ(0, 1, 0), geom.XYZ(-1, 1, 0),
	}
	if d := cmp.Diff(want, cut.FaceVecs(0), approx); d != "" {
		t.Errorf("loop:\n%s", d)
	}
	if n := len(objMesh(t, s, "cutter").Points); n != 4 {
		t.Errorf("cutter points = %d, want 4", n)
	}
}

func TestCounts(t *testing.T) {
	s := mustEval(t, `
(def n (+ (faces (cube 1)) (points (cube 1))))
(defobj "sized" (cube n))
`)
	if d := cmp.Diff(geom.XYZ(14, 14, 14), objMesh(t, s, "sized").Size(), approx); d != "" {
		t.Errorf("size:\n%s", d)
	}
}

// ---------------------------------------------------------------------------
// Scene builtins
// ---------------------------------------------------------------------------

func TestObjLookup(t *testing.T) {
	s := mustEval(t, `
(defobj "a" (cube 1))
(defobj "b" (translate (clone (obj "a")) (vec3 5 0 0)))
`)
	if s.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", s.Len())
	}
	if d := cmp.Diff(geom.XYZ(5, 0, 0), objMesh(t, s, "b").Bounds().Center(), approx); d != "" {
		t.Errorf("b center:\n%s", d)
	}
	if d := cmp.Diff(geom.XYZ(0, 0, 0), objMesh(t, s, "a").Bounds().Center(), approx); d != "" {
		t.Errorf("a center:\n%s", d)
	}
}

func TestObjLookupError(t *testing.T) {
	msg := evalErrors(t, `(obj "nonexistent")`)
	if !strings.Contains(msg, "nonexistent") {
		t.Errorf("message = %q, want it to name the object", msg)
	}
}

func TestDefobjNeedsMesh(t *testing.T) {
	evalErrors(t, `(defobj "x" 42)`)
}

func TestVariableReference(t *testing.T) {
	s := mustEval(t, `
(def h 19)
(defobj "slab" (extrude (square 10) h))
`)
	if z := objMesh(t, s, "slab").Size().Z; z != 19 {
		t.Errorf("height = %v, want 19 (from variable)", z)
	}
}

// ---------------------------------------------------------------------------
// Precondition failures
// ---------------------------------------------------------------------------

func TestPreconditionsBecomeEvalErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"extrude a cube", `(extrude (cube 1) 1)`, "Extrude"},
		{"inset out of range", `(inset (square 1) :amount 2)`, "InsetFace"},
		{"subdivide a square", `(subdivide (square 1))`, "subdivide"},
		{"subtract from a cube", `(subtract (cube 1) (square 1))`, "Subtract"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalErrors(t, tt.source)
			if !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want containing %q", msg, tt.want)
			}
		})
	}
}

func TestEvaluateResult(t *testing.T) {
	res, err := NewEngine().EvaluateResult(`
(defobj "ok" (cube 1))
(defobj "flat" (square 1))
`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if res.Scene == nil || res.Scene.Len() != 2 {
		t.Fatalf("expected a scene with 2 objects, got %v", res.Scene)
	}
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
	for _, w := range res.Warnings {
		if w.Object == "ok" {
			t.Errorf("closed cube produced warning %q", w.Message)
		}
	}
}

// ---------------------------------------------------------------------------
// Existing functionality preserved
// ---------------------------------------------------------------------------

func TestEmptySourceStillWorks(t *testing.T) {
	s := mustEval(t, "")
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d objects", s.Len())
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	s := mustEval(t, "(+ 1 2)")
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d objects", s.Len())
	}
}
