package bind

import (
	"reflect"
	"unsafe"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CustomRequester is implemented by owners that need resources beyond their
// tagged fields. The requests are reported by DiscoverRequiredResources.
type CustomRequester interface {
	CustomRequests() []Request
}

// Initializer is implemented by owners that want a hook after their fields are
// assigned. It runs before the tagged initializer methods.
type Initializer interface {
	Initialize() error
}

// Lifecycle is the binding state shared by roots and children.
//
// It is not safe for concurrent use.
type Lifecycle[R any] struct {
	owner    reflect.Value
	name     string
	bound    bool
	injected bool
	bindings Table
	misses   error
	log      *zap.Logger
	base     *zap.Logger
}

func newLifecycle[R any](log *zap.Logger) Lifecycle[R] {
	return Lifecycle[R]{name: "<unbound>", log: log, base: log}
}

// Bound reports whether Bind succeeded.
func (l *Lifecycle[R]) Bound() bool { return l.bound }

// Injected reports whether this component's pass completed. For a root that
// includes every ready listener.
func (l *Lifecycle[R]) Injected() bool { return l.injected }

// Name returns the owner's type name, used in logs and errors.
func (l *Lifecycle[R]) Name() string { return l.name }

// Bindings returns a copy of the binding table. It is empty before Bind and
// after the component's injection pass.
func (l *Lifecycle[R]) Bindings() Table { return l.bindings.Clone() }

// Misses returns every resource miss recorded during injection, combined with
// multierr, or nil when all bindings resolved.
func (l *Lifecycle[R]) Misses() error { return l.misses }

func (l *Lifecycle[R]) bind(owner any) error {
	if l.bound {
		return DoubleBindError{Component: l.name}
	}
	v := reflect.ValueOf(owner)
	if !v.IsValid() {
		return InvalidOwnerError{GotType: "<nil>"}
	}
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return InvalidOwnerError{GotType: v.Type().String()}
	}

	if l.log == nil {
		l.log, l.base = Logger(), Logger()
	}
	l.owner = v
	l.name = v.Type().String()
	l.log = l.log.With(zap.String("component", l.name))
	l.bindings = Scan(v.Elem().Type(), reflect.TypeFor[R](), l.log)
	l.bound = true
	return nil
}

// ownRequests returns the tagged single requests followed by custom ones.
func (l *Lifecycle[R]) ownRequests() []Request {
	if !l.bound {
		return nil
	}
	out := l.bindings.Requests()
	if cr, ok := l.owner.Interface().(CustomRequester); ok {
		out = append(out, cr.CustomRequests()...)
	}
	return out
}

// assign resolves every binding against table. Collections go first, then
// singles, each in declaration order.
func (l *Lifecycle[R]) assign(table ResourceTable[R]) {
	for _, b := range l.bindings.Collections {
		target := l.field(b.Index)
		bundle, ok := table.ResolveCollection(b.Scene)
		if !ok {
			l.miss(MissingResourceError{Scene: b.Scene}, b.Field)
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(bundle))
	}

	for _, b := range l.bindings.Singles {
		target := l.field(b.Index)
		val, ok := table.Resolve(b.Request)
		if !ok {
			l.miss(MissingResourceError{Scene: b.Request.Scene, Name: b.Request.Name}, b.Field)
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		rv := reflect.ValueOf(&val).Elem()
		if !b.SkipTypeCheck {
			target.Set(rv)
			continue
		}
		l.assignUnchecked(target, rv, b)
	}
}

// assignUnchecked handles nocheck bindings, where the field type may differ
// from R. Interface resources are unwrapped to their dynamic value first.
func (l *Lifecycle[R]) assignUnchecked(target, rv reflect.Value, b SingleBinding) {
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch {
	case !rv.IsValid():
		target.Set(reflect.Zero(target.Type()))
	case rv.Type().AssignableTo(target.Type()):
		target.Set(rv)
	default:
		l.log.Error("preload type mismatch",
			zap.String("scene", b.Request.Scene),
			zap.String("name", b.Request.Name),
			zap.String("field", b.Field),
			zap.Stringer("got", rv.Type()),
			zap.Stringer("want", target.Type()))
		l.misses = multierr.Append(l.misses, MismatchError{
			Request: b.Request,
			Field:   b.Field,
			Got:     rv.Type().String(),
			Want:    target.Type().String(),
		})
		target.Set(reflect.Zero(target.Type()))
	}
}

func (l *Lifecycle[R]) miss(err MissingResourceError, field string) {
	fields := []zap.Field{zap.String("scene", err.Scene), zap.String("field", field)}
	if !err.Collection() {
		fields = append(fields, zap.String("name", err.Name))
	}
	l.log.Error("preload not found", fields...)
	l.log.Info("assigning zero value", zap.String("field", field))
	l.misses = multierr.Append(l.misses, err)
}

// field returns a settable Value for the field at index, unexported included.
func (l *Lifecycle[R]) field(index []int) reflect.Value {
	f := l.owner.Elem().FieldByIndex(index)
	if !f.CanSet() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}
	return f
}

// initialize runs the Initializer hook and then every tagged initializer in
// declaration order. Panics are not recovered.
func (l *Lifecycle[R]) initialize() error {
	if in, ok := l.owner.Interface().(Initializer); ok {
		if err := in.Initialize(); err != nil {
			return InitializerError{Component: l.name, Method: "Initialize", Err: err}
		}
	}
	for _, m := range l.bindings.Initializers {
		out := l.owner.Method(m.Index).Call(nil)
		if !m.ReturnsError {
			continue
		}
		if err, _ := out[0].Interface().(error); err != nil {
			return InitializerError{Component: l.name, Method: m.Name, Err: err}
		}
	}
	return nil
}

// run is one component's own pass: assign, initialize. The caller marks the
// component injected once everything it owns has run.
func (l *Lifecycle[R]) run(table ResourceTable[R]) error {
	if !l.bound {
		return NotBoundError{Component: l.name}
	}
	l.assign(table)
	if err := l.initialize(); err != nil {
		return err
	}
	return nil
}

func (l *Lifecycle[R]) clear() {
	l.bindings.Clear()
}
