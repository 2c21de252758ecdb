package scene

import (
	"fmt"

	"github.com/chazu/facet/pkg/topology"
)

// ValidationError is one topology finding for a named object.
type ValidationError struct {
	Object string
	Issue  topology.Issue
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] object %s: %s", e.Issue.Severity, e.Object, e.Issue.Message)
}

// Validate runs topology.Check on every object in definition order. It
// is read-only. Objects without a mesh are reported as errors.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	s.Each(func(o *Object) {
		if o.Mesh == nil {
			errs = append(errs, ValidationError{
				Object: o.Name,
				Issue:  topology.Issue{Severity: topology.SeverityError, Face: -1, Message: "object has no mesh"},
			})
			return
		}
		for _, issue := range topology.Check(o.Mesh) {
			errs = append(errs, ValidationError{Object: o.Name, Issue: issue})
		}
	})
	return errs
}

// HasErrors reports whether errs holds an error-severity finding.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Issue.Severity == topology.SeverityError {
			return true
		}
	}
	return false
}
