package engine

import (
	"errors"
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/facet/pkg/boolean"
	"github.com/chazu/facet/pkg/geom"
	"github.com/chazu/facet/pkg/mesh"
	"github.com/chazu/facet/pkg/scene"
	"github.com/chazu/facet/pkg/shape"
	"github.com/chazu/facet/pkg/subdivide"
	"github.com/chazu/facet/pkg/topology"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMesh wraps a *mesh.Mesh so it can be passed between builtins.
// Operations mutate the wrapped mesh and return the same value; scripts
// call (clone m) to keep an original.
type sexpMesh struct {
	m *mesh.Mesh
}

func (s *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh :points %d :faces %d)", len(s.m.Points), len(s.m.Faces))
}
func (s *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geom.Vec.
type sexpVec3 struct {
	vec geom.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			result.positional = append(result.positional, args[i])
		case i+1 < len(args):
			result.kw[name] = args[i+1]
			i++
		default:
			// A trailing keyword is a value, as in (color m :red).
			result.positional = append(result.positional, args[i])
		}
	}
	return result
}

// arg returns the keyword argument name if present, else positional
// argument pos if present.
func (a kwArgs) arg(name string, pos int) (zygo.Sexp, bool) {
	if v, ok := a.kw[name]; ok {
		return v, true
	}
	if pos >= 0 && pos < len(a.positional) {
		return a.positional[pos], true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_red) and plain strings ("red").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toColor converts a keyword or string to a mesh.Color.
func toColor(s zygo.Sexp) (mesh.Color, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return mesh.White, fmt.Errorf("expected color keyword: %w", err)
	}
	return mesh.ParseColor(name)
}

// toMesh extracts the mesh from a sexpMesh.
func toMesh(s zygo.Sexp) (*mesh.Mesh, error) {
	if m, ok := s.(*sexpMesh); ok {
		return m.m, nil
	}
	return nil, fmt.Errorf("expected mesh, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3. A bare number n is read as
// (vec3 n n n).
func toVec3(s zygo.Sexp) (geom.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	if f, err := toFloat64(s); err == nil {
		return geom.XYZ(f, f, f), nil
	}
	return geom.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toPoints converts vec3 arguments into white points.
func toPoints(args []zygo.Sexp) ([]mesh.Point, error) {
	points := make([]mesh.Point, len(args))
	for i, a := range args {
		v, err := toVec3(a)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points[i] = mesh.Point{Vec: v}
	}
	return points, nil
}

func wrapMesh(m *mesh.Mesh) zygo.Sexp {
	return &sexpMesh{m: m}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the signature of a script builtin before guarding.
type builtinFunc func(args []zygo.Sexp) (zygo.Sexp, error)

// addGuarded registers fn under name. Precondition and topology panics
// raised by the mesh operations are turned into errors so that they
// surface as EvalErrors instead of killing the evaluation.
func addGuarded(env *zygo.Zlisp, name string, fn builtinFunc) {
	env.AddFunction(name, func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (out zygo.Sexp, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if e, ok := r.(error); ok {
				var pe *mesh.PreconditionError
				var te *topology.TopologyError
				if errors.As(e, &pe) || errors.As(e, &te) {
					out, err = zygo.SexpNull, fmt.Errorf("%s: %w", name, e)
					return
				}
			}
			panic(r)
		}()
		return fn(args)
	})
}

// meshOp registers a builtin whose first argument is a mesh.
func meshOp(env *zygo.Zlisp, name string, fn func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error)) {
	addGuarded(env, name, func(args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("%s requires a mesh as first argument", name)
		}
		m, err := toMesh(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		pa.positional = pa.positional[1:]
		return fn(m, pa)
	})
}

// registerBuiltins installs all mesh builtins into a zygomys environment.
// Builtins that define objects populate s during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {
	registerConstructors(env)
	registerTransforms(env)
	registerOperations(env)
	registerScene(env, s)
}

func registerConstructors(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	addGuarded(env, "vec3", func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: geom.XYZ(xyz[0], xyz[1], xyz[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (cube 2) (square :size 1)
	// -----------------------------------------------------------------------
	for name, build := range map[string]func(float64) *mesh.Mesh{
		"cube":   mesh.Cube,
		"square": mesh.Square,
	} {
		addGuarded(env, name, func(args []zygo.Sexp) (zygo.Sexp, error) {
			size := 1.0
			if v, ok := parseArgs(args).arg("size", 0); ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: size: %w", name, err)
				}
				size = f
			}
			return wrapMesh(build(size)), nil
		})
	}

	// -----------------------------------------------------------------------
	// (polygon (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0))
	// (line (vec3 0 0 0) (vec3 1 1 0) ...)
	// -----------------------------------------------------------------------
	addGuarded(env, "polygon", func(args []zygo.Sexp) (zygo.Sexp, error) {
		points, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		if len(points) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 points, got %d", len(points))
		}
		return wrapMesh(mesh.Polygon(points)), nil
	})
	addGuarded(env, "line", func(args []zygo.Sexp) (zygo.Sexp, error) {
		points, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		return wrapMesh(mesh.Line(points)), nil
	})

	// -----------------------------------------------------------------------
	// (segment (vec3 0 0 0) (vec3 1 0 0))
	// -----------------------------------------------------------------------
	addGuarded(env, "segment", func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("segment requires exactly 2 points, got %d", len(args))
		}
		points, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: %w", err)
		}
		return wrapMesh(mesh.Segment(points[0], points[1])), nil
	})

	// -----------------------------------------------------------------------
	// (point (vec3 1 2 3))
	// -----------------------------------------------------------------------
	addGuarded(env, "point", func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("point requires exactly 1 argument, got %d", len(args))
		}
		points, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: %w", err)
		}
		return wrapMesh(mesh.PointObject(points[0])), nil
	})
}

func registerTransforms(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (translate m (vec3 1 0 0)) (rotate m :by (vec3 0 0 90)) (scale m 2)
	// -----------------------------------------------------------------------
	for name, apply := range map[string]func(m *mesh.Mesh, v geom.Vec) *mesh.Mesh{
		"translate": (*mesh.Mesh).Translate,
		"rotate":    (*mesh.Mesh).Rotate,
		"scale":     (*mesh.Mesh).Scale,
	} {
		meshOp(env, name, func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
			v, ok := pa.arg("by", 0)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s requires a vector", name)
			}
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: by: %w", name, err)
			}
			return wrapMesh(apply(m, vec)), nil
		})
	}

	// -----------------------------------------------------------------------
	// (color m :red)
	// -----------------------------------------------------------------------
	meshOp(env, "color", func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		v, ok := pa.arg("color", 0)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("color requires a color keyword")
		}
		c, err := toColor(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		return wrapMesh(m.SetColor(c)), nil
	})

	// -----------------------------------------------------------------------
	// (clone m)
	// -----------------------------------------------------------------------
	meshOp(env, "clone", func(m *mesh.Mesh, _ kwArgs) (zygo.Sexp, error) {
		return wrapMesh(m.Clone()), nil
	})
}

// optionalInt reads keyword or positional argument name as an int,
// returning def when it is absent.
func optionalInt(pa kwArgs, name string, pos, def int) (int, error) {
	v, ok := pa.arg(name, pos)
	if !ok {
		return def, nil
	}
	return toInt(v)
}

func registerOperations(env *zygo.Zlisp) {
	// -----------------------------------------------------------------------
	// (subdivide m) (subdivide m :times 2)
	// (hotpoints m) (hotpoints m :times 3)
	// -----------------------------------------------------------------------
	meshOp(env, "subdivide", func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		n, err := optionalInt(pa, "times", 0, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivide: times: %w", err)
		}
		return wrapMesh(subdivide.CatmullClarkN(m, n)), nil
	})
	meshOp(env, "hotpoints", func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		n, err := optionalInt(pa, "times", 0, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hotpoints: times: %w", err)
		}
		for i := 0; i < n; i++ {
			subdivide.Hotpoints(m)
		}
		return wrapMesh(m), nil
	})

	// -----------------------------------------------------------------------
	// (extrude m 2) (extrude m :height 2)
	// -----------------------------------------------------------------------
	meshOp(env, "extrude", func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		v, ok := pa.arg("height", 0)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("extrude requires a height")
		}
		h, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: height: %w", err)
		}
		return wrapMesh(shape.Extrude(m, h)), nil
	})

	// -----------------------------------------------------------------------
	// (inset m :face 0 :amount 0.25)
	// -----------------------------------------------------------------------
	meshOp(env, "inset", func(m *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		face, err := optionalInt(pa, "face", 0, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inset: face: %w", err)
		}
		v, ok := pa.arg("amount", 1)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("inset requires an amount")
		}
		amount, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("inset: amount: %w", err)
		}
		return wrapMesh(shape.InsetFace(m, face, amount)), nil
	})

	// -----------------------------------------------------------------------
	// (subtract a b)
	// -----------------------------------------------------------------------
	meshOp(env, "subtract", func(a *mesh.Mesh, pa kwArgs) (zygo.Sexp, error) {
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("subtract requires two meshes")
		}
		b, err := toMesh(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("subtract: %w", err)
		}
		boolean.Subtract(a, b)
		return wrapMesh(a), nil
	})

	// -----------------------------------------------------------------------
	// (faces m) (points m)
	// -----------------------------------------------------------------------
	meshOp(env, "faces", func(m *mesh.Mesh, _ kwArgs) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(m.Faces))}, nil
	})
	meshOp(env, "points", func(m *mesh.Mesh, _ kwArgs) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(m.Points))}, nil
	})
}

func registerScene(env *zygo.Zlisp, s *scene.Scene) {
	// -----------------------------------------------------------------------
	// (defobj "name" (cube 1))
	// -----------------------------------------------------------------------
	addGuarded(env, "defobj", func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defobj requires a name and a body expression")
		}
		name, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defobj: name: %w", err)
		}
		m, err := toMesh(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defobj: %w", err)
		}
		s.Add(&scene.Object{Name: name, Mesh: m})
		return args[1], nil
	})

	// -----------------------------------------------------------------------
	// (obj "name")
	// -----------------------------------------------------------------------
	addGuarded(env, "obj", func(args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("obj requires a name argument")
		}
		name, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("obj: name: %w", err)
		}
		o := s.Lookup(name)
		if o == nil {
			return zygo.SexpNull, fmt.Errorf("obj: no object named %q", name)
		}
		return wrapMesh(o.Mesh), nil
	})
}
