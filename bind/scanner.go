package bind

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Struct tag keys understood by Scan.
//
//	type Mod struct {
//		Knight *Object            `preload:"Town,Knight"`
//		Shade  any                `preload:"Town,Shade,nocheck"`
//		Town   map[string]*Object `preloads:"Town"`
//		_      bind.Init          `init:"Setup"`
//	}
const (
	TagPreload     = "preload"
	TagCollection  = "preloads"
	TagInitializer = "init"

	optNoCheck = "nocheck"
)

// Init is the marker type for initializer declarations. A blank field of this
// type tagged `init:"Method"` names an exported zero-argument method to run
// after injection. Multiple markers run in field order.
type Init struct{}

var (
	errorType       = reflect.TypeFor[error]()
	initType        = reflect.TypeFor[Init]()
	initializerType = reflect.TypeFor[Initializer]()
)

// Scan walks the fields of owner (a struct type) in declaration order and
// returns the binding descriptors for resource type resource.
//
// Fields whose type does not fit the declared binding shape are skipped
// silently; an init tag only counts on a field of type Init. Malformed tags and unusable initializer methods are logged and
// skipped. Anonymous embedded structs are scanned in place.
func Scan(owner, resource reflect.Type, log *zap.Logger) Table {
	if log == nil {
		log = Logger()
	}
	s := scanner{
		ptr:        reflect.PointerTo(owner),
		single:     resource,
		collection: reflect.MapOf(reflect.TypeFor[string](), resource),
		log:        log,
	}
	s.fields(owner, nil, "")
	return s.out
}

type scanner struct {
	ptr        reflect.Type
	single     reflect.Type
	collection reflect.Type
	log        *zap.Logger
	out        Table
}

func (s *scanner) fields(t reflect.Type, prefix []int, path string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append(make([]int, 0, len(prefix)+1), prefix...), i)
		name := f.Name
		if path != "" {
			name = path + "." + f.Name
		}

		tagged := false
		if tag, ok := f.Tag.Lookup(TagPreload); ok {
			tagged = true
			s.preload(f, tag, name, index)
		}
		if tag, ok := f.Tag.Lookup(TagCollection); ok {
			tagged = true
			s.preloads(f, tag, name, index)
		}
		if tag, ok := f.Tag.Lookup(TagInitializer); ok && f.Type == initType {
			tagged = true
			s.initializer(tag, name)
		}

		if !tagged && f.Anonymous && f.Type.Kind() == reflect.Struct {
			s.fields(f.Type, index, name)
		}
	}
}

func (s *scanner) preload(f reflect.StructField, tag, name string, index []int) {
	parts := splitTag(tag)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		s.log.Warn("malformed preload tag, skipping",
			zap.String("field", name), zap.String("tag", tag))
		return
	}
	skip := false
	for _, opt := range parts[2:] {
		if opt == optNoCheck {
			skip = true
			continue
		}
		s.log.Warn("unknown preload tag option ignored",
			zap.String("field", name), zap.String("option", opt))
	}
	if !skip && f.Type != s.single {
		return
	}
	s.out.Singles = append(s.out.Singles, SingleBinding{
		Request:       Request{Scene: parts[0], Name: parts[1]},
		Field:         name,
		Index:         index,
		SkipTypeCheck: skip,
	})
}

func (s *scanner) preloads(f reflect.StructField, tag, name string, index []int) {
	scene := strings.TrimSpace(tag)
	if scene == "" {
		s.log.Warn("malformed preloads tag, skipping", zap.String("field", name))
		return
	}
	if f.Type != s.collection {
		return
	}
	s.out.Collections = append(s.out.Collections, CollectionBinding{
		Scene: scene,
		Field: name,
		Index: index,
	})
}

func (s *scanner) initializer(tag, field string) {
	name := strings.TrimSpace(tag)
	m, ok := s.ptr.MethodByName(name)
	if name == "" || !ok {
		s.log.Warn("initializer method not found, skipping",
			zap.String("field", field), zap.String("method", name))
		return
	}
	if name == "Initialize" && s.ptr.Implements(initializerType) {
		s.log.Debug("initializer already runs through Initializer, skipping",
			zap.String("method", name))
		return
	}
	// In is the receiver plus declared parameters.
	if m.Type.NumIn() != 1 {
		s.log.Warn("initializer must take no parameters, skipping",
			zap.String("method", name), zap.Int("params", m.Type.NumIn()-1))
		return
	}
	returnsErr := false
	switch {
	case m.Type.NumOut() == 0:
	case m.Type.NumOut() == 1 && m.Type.Out(0) == errorType:
		returnsErr = true
	default:
		s.log.Warn("initializer must return nothing or error, skipping",
			zap.String("method", name))
		return
	}
	s.out.Initializers = append(s.out.Initializers, InitializerMethod{
		Name:         name,
		Index:        m.Index,
		ReturnsError: returnsErr,
	})
}

func splitTag(tag string) []string {
	parts := strings.Split(tag, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
