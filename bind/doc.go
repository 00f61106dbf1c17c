// Package bind implements declarative resource binding for mod components.
//
// A mod declares what it needs with struct tags and holds a lifecycle value
// instead of inheriting from a base type:
//
//	type Mod struct {
//		*bind.Root[*manifest.Object]
//
//		Knight *manifest.Object            `preload:"Town,Knight"`
//		Town   map[string]*manifest.Object `preloads:"Town"`
//		_      bind.Init                   `init:"Setup"`
//	}
//
//	func NewMod() (*Mod, error) {
//		m := &Mod{Root: bind.NewRoot[*manifest.Object]()}
//		return m, m.Bind(m)
//	}
//
// Children are created with NewChild(root) and bind themselves the same way;
// binding appends them to the root's child list.
//
// Host flow
//
//  1. construct the root, then the children
//  2. reqs := root.DiscoverRequiredResources()
//  3. the host loads reqs into a ResourceTable
//  4. root.Inject(table)
//
// Inject assigns the root's fields, runs its initializers, then wires each
// child in registration order. A resource missing from the table is logged,
// the field gets its zero value, and the pass carries on. Usage mistakes
// (Bind twice, Inject before Bind, Inject twice) and initializer failures are
// returned and stop the pass. Panics inside initializers are not recovered.
//
// Declarations
//
//   - `preload:"scene,name"` on a field of exactly type R. Add `,nocheck` to
//     accept any field type the resource is assignable to.
//   - `preloads:"scene"` on a field of type map[string]R.
//   - `init:"Method"` on a blank bind.Init field names an exported method with
//     no parameters returning nothing or an error.
//
// Fields that do not match the declared shape are ignored without a log line.
// Declarations are processed in struct field order.
//
// Everything runs on the caller's goroutine; nothing here is safe for
// concurrent use.
//
// Import
//
//	"github.com/sghaida/modbind/bind"
package bind
