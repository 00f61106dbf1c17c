package bind

import (
	"errors"
	"strconv"
)

var (
	// ErrAlreadyInjected is returned when Inject is called on a root whose
	// injection pass already ran, including one aborted by a fatal error.
	ErrAlreadyInjected = errors.New("bind: resources already injected")

	// ErrReentrantInject is returned when an initializer or a ready listener
	// triggers another injection pass on the same tree. The tree is left in
	// whatever state the outer pass reaches; treat it as a programming error.
	ErrReentrantInject = errors.New("bind: reentrant inject")
)

// DoubleBindError is returned when Bind is called a second time on the same
// component. The first binding table is left untouched.
type DoubleBindError struct{ Component string }

// Error implements the error interface.
func (e DoubleBindError) Error() string {
	// Example: bind: component "*mods.Mod" is already bound
	return "bind: component " + strconv.Quote(e.Component) + " is already bound"
}

// NotBoundError is returned when a component is injected before Bind was called.
type NotBoundError struct{ Component string }

// Error implements the error interface.
func (e NotBoundError) Error() string {
	return "bind: component " + strconv.Quote(e.Component) + " was injected before Bind"
}

// InvalidOwnerError is returned when Bind receives something other than a
// non-nil pointer to a struct.
type InvalidOwnerError struct {
	// GotType is the dynamic type of the rejected owner ("<nil>" for nil).
	GotType string
}

// Error implements the error interface.
func (e InvalidOwnerError) Error() string {
	return "bind: owner must be a non-nil pointer to a struct, got " + e.GotType
}

// MissingResourceError describes a binding whose resource was absent from the
// resource table. It is never returned by Inject; it is logged and collected in
// Misses.
type MissingResourceError struct {
	Scene string
	// Name is empty for collection bindings.
	Name string
}

// Error implements the error interface.
func (e MissingResourceError) Error() string {
	if e.Name == "" {
		// Example: bind: no resources for scene "Town"
		return "bind: no resources for scene " + strconv.Quote(e.Scene)
	}
	// Example: bind: resource ("Town", "Knight") not found
	return "bind: resource (" + strconv.Quote(e.Scene) + ", " + strconv.Quote(e.Name) + ") not found"
}

// Collection reports whether the miss was for a whole scene bundle.
func (e MissingResourceError) Collection() bool { return e.Name == "" }

// InitializerError wraps an error returned by an initializer method or a ready
// listener. The pass stops at the first one.
type InitializerError struct {
	Component string
	Method    string
	Err       error
}

// Error implements the error interface.
func (e InitializerError) Error() string {
	return "bind: initializer " + strconv.Quote(e.Method) + " of " + strconv.Quote(e.Component) + " failed: " + e.Err.Error()
}

// Unwrap returns the initializer's own error.
func (e InitializerError) Unwrap() error { return e.Err }

// MismatchError describes a nocheck binding whose resource could not be
// assigned to the field's type. Like a miss, it is logged and collected.
type MismatchError struct {
	Request Request
	Field   string
	Got     string
	Want    string
}

// Error implements the error interface.
func (e MismatchError) Error() string {
	return "bind: resource (" + strconv.Quote(e.Request.Scene) + ", " + strconv.Quote(e.Request.Name) +
		") of type " + e.Got + " cannot be assigned to field " + strconv.Quote(e.Field) + " of type " + e.Want
}
