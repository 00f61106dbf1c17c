package bind

// Request identifies one externally provided resource.
type Request struct {
	Scene string
	Name  string
}

// ResourceTable is the host-supplied snapshot: scene -> name -> resource.
//
// It is intentionally:
// - read-only once handed to Inject
// - side effect free to query
// - consumed during one injection pass
//
// Expected usage:
//
//	r, ok := table.Resolve(bind.Request{Scene: "Town", Name: "Knight"})
type ResourceTable[R any] map[string]map[string]R

// Resolver looks resources up without logging or fallback policy. Missing
// entries are reported with ok=false; the lifecycle decides what to assign.
type Resolver[R any] interface {
	Resolve(req Request) (val R, ok bool)
	ResolveCollection(scene string) (bundle map[string]R, ok bool)
}

var _ Resolver[any] = ResourceTable[any](nil)

// Resolve returns the resource stored under (req.Scene, req.Name).
// A missing scene and a missing name are indistinguishable to the caller.
func (t ResourceTable[R]) Resolve(req Request) (val R, ok bool) {
	scene, ok := t[req.Scene]
	if !ok {
		return val, false
	}
	val, ok = scene[req.Name]
	return val, ok
}

// ResolveCollection returns the whole bundle for scene. A scene present with a
// nil bundle counts as missing.
func (t ResourceTable[R]) ResolveCollection(scene string) (map[string]R, bool) {
	bundle, ok := t[scene]
	if !ok || bundle == nil {
		return nil, false
	}
	return bundle, true
}

// Provide stores a resource and returns the table for chaining.
// Intended for hosts and tests assembling a table by hand.
func (t ResourceTable[R]) Provide(scene, name string, val R) ResourceTable[R] {
	bundle, ok := t[scene]
	if !ok || bundle == nil {
		bundle = map[string]R{}
		t[scene] = bundle
	}
	bundle[name] = val
	return t
}

// Len returns the number of resources across all scenes.
func (t ResourceTable[R]) Len() int {
	n := 0
	for _, bundle := range t {
		n += len(bundle)
	}
	return n
}
