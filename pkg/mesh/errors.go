package mesh

import "fmt"

// PreconditionError is the panic value raised when an operation is called
// on input it is not defined for: the wrong number of faces, an inset
// amount outside [0,1], a face index out of range. These are caller bugs,
// so operations fail fast instead of guessing.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Msg)
}

// Require panics with a *PreconditionError when cond is false.
func Require(cond bool, op, format string, args ...any) {
	if !cond {
		panic(&PreconditionError{Op: op, Msg: fmt.Sprintf(format, args...)})
	}
}
