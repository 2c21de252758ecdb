package topology

import (
	"fmt"

	"github.com/chazu/facet/pkg/mesh"
)

// Severity distinguishes blocking issues from advisory ones.
type Severity int

const (
	SeverityError   Severity = iota // the mesh is malformed
	SeverityWarning                 // legal but likely to upset an operation
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is one finding from Check.
type Issue struct {
	Severity Severity
	Face     int // -1 when the issue is not about a single face
	Edge     *Edge
	Message  string
}

func (i Issue) String() string {
	loc := ""
	if i.Face >= 0 {
		loc = fmt.Sprintf(" (face %d)", i.Face)
	}
	if i.Edge != nil {
		loc += fmt.Sprintf(" (edge %s)", *i.Edge)
	}
	return fmt.Sprintf("%s: %s%s", i.Severity, i.Message, loc)
}

// Check inspects m without changing it. Errors report faces that are
// empty or reference missing points. Warnings report edges shared by
// more than two faces, edges whose endpoints are the same index, and
// polygons whose normal is too short to normalize.
func Check(m *mesh.Mesh) []Issue {
	var issues []Issue
	issues = append(issues, checkIndices(m)...)
	if len(issues) > 0 {
		// Later checks index into Points.
		return issues
	}
	issues = append(issues, checkEdges(m)...)
	issues = append(issues, checkNormals(m)...)
	return issues
}

// HasErrors reports whether issues holds an error-severity finding.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func checkIndices(m *mesh.Mesh) []Issue {
	var issues []Issue
	for i, f := range m.Faces {
		if len(f) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Face:     i,
				Message:  "face has no points",
			})
			continue
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Points) {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Face:     i,
					Message:  fmt.Sprintf("point index %d out of range [0,%d)", idx, len(m.Points)),
				})
			}
		}
	}
	return issues
}

func checkEdges(m *mesh.Mesh) []Issue {
	var issues []Issue
	uses := make(map[Edge]int)
	var order []Edge
	for i, f := range m.Faces {
		if len(f) < 2 {
			continue
		}
		faceEdges(f, func(_ int, e Edge) bool {
			if e.A == e.B {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Face:     i,
					Edge:     &e,
					Message:  "edge joins a point to itself",
				})
				return true
			}
			k := e.Key()
			if uses[k] == 0 {
				order = append(order, k)
			}
			uses[k]++
			return true
		})
	}
	for _, k := range order {
		if uses[k] > 2 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Face:     -1,
				Edge:     &k,
				Message:  fmt.Sprintf("edge is shared by %d faces", uses[k]),
			})
		}
	}
	return issues
}

func checkNormals(m *mesh.Mesh) []Issue {
	var issues []Issue
	for i, f := range m.Faces {
		if len(f) < 3 {
			continue
		}
		if m.FaceNormal(i).Length() == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Face:     i,
				Message:  "face is degenerate; its first three corners are collinear",
			})
		}
	}
	return issues
}
