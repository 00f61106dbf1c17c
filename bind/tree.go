package bind

import (
	"strconv"

	"go.uber.org/zap"
)

// Host is what the mod loader drives: one discovery call, then one injection.
type Host[R any] interface {
	DiscoverRequiredResources() []Request
	Inject(table ResourceTable[R]) error
}

var _ Host[any] = (*Root[any])(nil)

type listener struct {
	name string
	fn   func() error
}

// Root is the top-level component driven by the host. Children register into
// it during their own Bind and are wired after the root's initializers return.
//
// Ready listeners (children included) are called synchronously, in
// registration order, from inside Inject. They must not call Inject again;
// doing so returns ErrReentrantInject.
type Root[R any] struct {
	Lifecycle[R]

	children   []*Child[R]
	listeners  []listener
	table      ResourceTable[R]
	reclaim    func()
	discovered bool
	started    bool
	injecting  bool
}

// NewRoot creates an unbound root. Call Bind with the owning struct next.
func NewRoot[R any](opts ...Option) *Root[R] {
	o := newOptions(Logger(), opts)
	return &Root[R]{
		Lifecycle: newLifecycle[R](o.log),
		reclaim:   o.reclaim,
	}
}

// Bind scans owner's tags into the root's binding table. It must be called
// exactly once; a second call returns DoubleBindError and changes nothing.
func (r *Root[R]) Bind(owner any) error {
	return r.bind(owner)
}

// Children returns the registered children in registration order.
// The returned slice MUST NOT be mutated.
func (r *Root[R]) Children() []*Child[R] {
	return r.children
}

// OnReady adds a listener fired after the root's own initializers, after the
// children registered before it. A non-nil error stops the pass. Listeners
// added from inside the pass still fire; those added once it is over never do.
func (r *Root[R]) OnReady(fn func() error) {
	if fn == nil {
		return
	}
	if r.passOver() {
		r.log.Warn("ready listener added after injection; it will not fire")
	}
	r.listeners = append(r.listeners, listener{
		name: "OnReady#" + strconv.Itoa(len(r.listeners)),
		fn:   fn,
	})
}

// DiscoverRequiredResources returns the root's own tagged requests, its custom
// requests, then every registered child's requests in registration order.
// Children registered after this call are not included.
func (r *Root[R]) DiscoverRequiredResources() []Request {
	r.discovered = true
	out := r.ownRequests()
	for _, c := range r.children {
		out = append(out, c.DiscoverRequiredResources()...)
	}
	return out
}

// Inject assigns the root's bindings from table, runs its initializers, then
// fires the ready listeners so children are wired in registration order.
// Finally the root's binding table is dropped and a reclamation hint is issued.
//
// Missing resources are logged and never returned. The returned error is
// always a usage error or an initializer failure, and it aborts the rest of
// the pass.
func (r *Root[R]) Inject(table ResourceTable[R]) error {
	if !r.bound {
		return NotBoundError{Component: r.name}
	}
	if r.injecting {
		return ErrReentrantInject
	}
	if r.started {
		return ErrAlreadyInjected
	}
	r.started = true
	r.injecting = true
	defer func() { r.injecting = false }()

	r.table = table
	if err := r.run(table); err != nil {
		return err
	}

	// Listeners may be appended while the loop runs.
	for i := 0; i < len(r.listeners); i++ {
		ln := r.listeners[i]
		if err := ln.fn(); err != nil {
			return wrapListener(r.name, ln.name, err)
		}
	}

	r.injected = true
	r.clear()
	if r.reclaim != nil {
		r.reclaim()
	}
	r.log.Debug("injection complete", zap.Int("children", len(r.children)))
	return nil
}

func wrapListener(component, name string, err error) error {
	switch err.(type) {
	case InitializerError, NotBoundError:
		return err
	}
	return InitializerError{Component: component, Method: name, Err: err}
}

// Resources returns the table handed to Inject, or nil before injection.
// The returned table MUST NOT be mutated.
func (r *Root[R]) Resources() ResourceTable[R] {
	return r.table
}

// Lookup resolves a resource from the injected table.
func (r *Root[R]) Lookup(scene, name string) (R, bool) {
	return r.table.Resolve(Request{Scene: scene, Name: name})
}

// passOver reports whether Inject ran and returned.
func (r *Root[R]) passOver() bool {
	return r.started && !r.injecting
}

func (r *Root[R]) register(c *Child[R]) {
	switch {
	case r.passOver():
		r.log.Warn("child registered after injection; it will never be wired",
			zap.String("child", c.name))
	case r.discovered:
		r.log.Warn("child registered after discovery; its requests were not reported",
			zap.String("child", c.name))
	}
	r.children = append(r.children, c)
	r.listeners = append(r.listeners, listener{name: c.name, fn: c.onReady})
}

// Child is a component wired after its root. It is linked to exactly one root
// at construction and joins the root's child list when Bind succeeds.
type Child[R any] struct {
	Lifecycle[R]

	root *Root[R]
}

// NewChild creates an unbound child of root. It inherits the root's logger
// unless WithLogger is given. NewChild panics if root is nil.
func NewChild[R any](root *Root[R], opts ...Option) *Child[R] {
	if root == nil {
		panic("bind: NewChild called with a nil root")
	}
	o := newOptions(root.base, opts)
	return &Child[R]{
		Lifecycle: newLifecycle[R](o.log),
		root:      root,
	}
}

// Bind scans owner's tags and appends the child to its root's child list.
// A second call returns DoubleBindError and does not register again.
func (c *Child[R]) Bind(owner any) error {
	if err := c.bind(owner); err != nil {
		return err
	}
	c.root.register(c)
	return nil
}

// Root returns the root the child belongs to.
func (c *Child[R]) Root() *Root[R] {
	return c.root
}

// DiscoverRequiredResources returns the child's own tagged and custom requests.
func (c *Child[R]) DiscoverRequiredResources() []Request {
	return c.ownRequests()
}

// Resources returns the root's injected table.
// The returned table MUST NOT be mutated.
func (c *Child[R]) Resources() ResourceTable[R] {
	return c.root.table
}

// Lookup resolves a resource from the root's injected table.
func (c *Child[R]) Lookup(scene, name string) (R, bool) {
	return c.root.Lookup(scene, name)
}

// onReady is the child's slot in the root's ready listeners.
func (c *Child[R]) onReady() error {
	if err := c.run(c.root.table); err != nil {
		return err
	}
	c.injected = true
	c.clear()
	return nil
}
