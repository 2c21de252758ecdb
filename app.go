package main

import (
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/tessellate"
)

// colorPalette is a default palette used to tag each object for viewers
// that draw one color per object instead of per-vertex colors.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs the full script pipeline: source, scene, render snapshots.
type App struct {
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format handed to viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Colors   []float32 `json:"colors"`
	Indices  []uint32  `json:"indices"`
	Lines    []uint32  `json:"lines"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Object  string `json:"object,omitempty"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine configured by opts.
func NewApp(opts ...engine.Option) *App {
	return &App{engine: engine.NewEngine(opts...)}
}

// Evaluate takes script source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a scene and validate it.
	res, err := a.engine.EvaluateResult(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		logging.Logger().Error("evaluate fatal error", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors and warnings.
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Object:  w.Object,
			Message: w.Message,
		})
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Tessellate every object into a render snapshot.
	meshes, err := tessellate.Scene(res.Scene)
	if err != nil {
		logging.Logger().Error("tessellate error", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 4: Convert snapshots to MeshData.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Colors:   m.Colors,
			Indices:  m.Indices,
			Lines:    m.Lines,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}
