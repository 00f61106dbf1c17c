// Package manifest reads YAML scene manifests and turns them into resource
// tables for bind.
//
// A manifest lists, per scene, the objects a host can preload:
//
//	scenes:
//	  Town:
//	    - name: Knight
//	      kind: npc
//	      props: {hp: "5"}
//
// Hosts use it in place of an engine's preload pipeline: discover the
// requests, call Table with them, and inject the result.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sghaida/modbind/bind"
	"gopkg.in/yaml.v3"
)

// ErrEmptyName is returned for a scene or object with a blank name.
var ErrEmptyName = errors.New("manifest: empty name")

// DuplicateObjectError is returned when a scene lists the same name twice.
type DuplicateObjectError struct {
	Scene string
	Name  string
}

// Error implements the error interface.
func (e DuplicateObjectError) Error() string {
	return fmt.Sprintf("manifest: duplicate object %q in scene %q", e.Name, e.Scene)
}

// Object is one preloadable scene object.
type Object struct {
	Scene string            `yaml:"-"`
	Name  string            `yaml:"name"`
	Kind  string            `yaml:"kind"`
	Props map[string]string `yaml:"props"`
}

// Prop returns a property value or def when unset.
func (o *Object) Prop(key, def string) string {
	if o == nil {
		return def
	}
	if v, ok := o.Props[key]; ok {
		return v
	}
	return def
}

// Manifest is a parsed scene manifest.
type Manifest struct {
	Scenes map[string][]*Object `yaml:"scenes"`

	index map[string]map[string]*Object
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

func (m *Manifest) build() error {
	m.index = make(map[string]map[string]*Object, len(m.Scenes))
	for scene, objs := range m.Scenes {
		if scene == "" {
			return fmt.Errorf("%w: scene", ErrEmptyName)
		}
		byName := make(map[string]*Object, len(objs))
		for _, o := range objs {
			if o == nil || o.Name == "" {
				return fmt.Errorf("%w: object in scene %q", ErrEmptyName, scene)
			}
			if _, dup := byName[o.Name]; dup {
				return DuplicateObjectError{Scene: scene, Name: o.Name}
			}
			o.Scene = scene
			byName[o.Name] = o
		}
		m.index[scene] = byName
	}
	return nil
}

// SceneNames returns the scene names in sorted order.
func (m *Manifest) SceneNames() []string {
	out := make([]string, 0, len(m.index))
	for s := range m.index {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Object returns the named object of scene.
func (m *Manifest) Object(scene, name string) (*Object, bool) {
	o, ok := m.index[scene][name]
	return o, ok
}

// Table builds a resource table holding the requested objects plus the full
// bundles of the given scenes. Requests the manifest cannot satisfy are
// returned in request order, deduplicated.
func (m *Manifest) Table(reqs []bind.Request, scenes ...string) (bind.ResourceTable[*Object], []bind.Request) {
	table := bind.ResourceTable[*Object]{}
	var missing []bind.Request
	seen := map[bind.Request]bool{}

	for _, req := range reqs {
		if seen[req] {
			continue
		}
		seen[req] = true
		o, ok := m.Object(req.Scene, req.Name)
		if !ok {
			missing = append(missing, req)
			continue
		}
		table.Provide(req.Scene, req.Name, o)
	}
	for _, scene := range scenes {
		for name, o := range m.index[scene] {
			table.Provide(scene, name, o)
		}
	}
	return table, missing
}

// Full returns every object of every scene.
func (m *Manifest) Full() bind.ResourceTable[*Object] {
	table, _ := m.Table(nil, m.SceneNames()...)
	return table
}
