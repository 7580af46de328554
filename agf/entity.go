package agf

import (
	"fmt"
	"strings"
	"sync"
)

// BuiltinPrefix namespaces the entities every registry is seeded with.
const BuiltinPrefix = "amy"

type EntityKind int

const (
	EntityInteger EntityKind = iota
	EntityString
	EntityTime
)

func (k EntityKind) String() string {
	switch k {
	case EntityInteger:
		return "integer"
	case EntityString:
		return "string"
	case EntityTime:
		return "time"
	}
	return fmt.Sprintf("<unknown entity kind %d>", int(k))
}

func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(s) {
	case "integer", "int", "":
		return EntityInteger, nil
	case "string":
		return EntityString, nil
	case "time":
		return EntityTime, nil
	}
	return 0, fmt.Errorf("unknown entity kind: %v", s)
}

// Entity is a named grammar fragment. Kind decides how a match of Pattern
// turns into a value.
type Entity struct {
	Name    string
	Kind    EntityKind
	Source  string
	Pattern Node
}

// Field is the key the value of e is exported under when e is a part of
// another entity, e.g. amytime.hour for amyhour inside amytime.
func (e *Entity) Field() string {
	if f := strings.TrimPrefix(e.Name, BuiltinPrefix); f != "" && f != e.Name {
		return f
	}
	return e.Name
}

var seedEntities = []struct {
	name string
	kind EntityKind
	src  string
}{
	{
		name: "amyinteger",
		kind: EntityInteger,
		src:  "$(0,2147483647,1)",
	},
	{
		name: "amyhour",
		kind: EntityInteger,
		src:  "$(0,24,1)",
	},
	{
		name: "amyminute",
		kind: EntityInteger,
		src:  "$(0,59,1)",
	},
	{
		name: "amytime",
		kind: EntityTime,
		src:  "({amyhour} [oh|x] {amyminute}|{amyhour} [o clock])",
	},
}

// EntityRegistry maps entity names to entities. An entity may refer only to
// entities registered before it, so the registry never holds a cycle.
type EntityRegistry struct {
	mu       sync.RWMutex
	entities map[string]*Entity
	names    []string
}

// NewEntityRegistry returns a registry seeded with the built-in entities.
func NewEntityRegistry() *EntityRegistry {
	r := &EntityRegistry{
		entities: map[string]*Entity{},
	}
	for _, s := range seedEntities {
		_, err := r.Register(s.name, s.kind, s.src)
		if err != nil {
			panic(fmt.Errorf("failed to register a built-in entity %v: %w", s.name, err))
		}
	}
	return r
}

// Register parses src against the entities registered so far and adds the
// result under name.
func (r *EntityRegistry) Register(name string, kind EntityKind, src string) (*Entity, error) {
	if !reEntityName.MatchString(name) {
		return nil, fmt.Errorf("%w: %v", SemErrInvalidEntityName, name)
	}
	if _, ok := r.Resolve(name); ok {
		return nil, fmt.Errorf("%w: %v", SemErrDuplicateEntity, name)
	}

	pattern, err := Parse(src, r)
	if err != nil {
		return nil, err
	}
	e := &Entity{
		Name:    name,
		Kind:    kind,
		Source:  src,
		Pattern: pattern,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entities[name]; ok {
		return nil, fmt.Errorf("%w: %v", SemErrDuplicateEntity, name)
	}
	r.entities[name] = e
	r.names = append(r.names, name)
	return e, nil
}

// Resolve looks an entity up. Repeated lookups of a name return the same
// *Entity.
func (r *EntityRegistry) Resolve(name string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[name]
	return e, ok
}

// Entities returns the registered entities in registration order.
func (r *EntityRegistry) Entities() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	es := make([]*Entity, 0, len(r.names))
	for _, name := range r.names {
		es = append(es, r.entities[name])
	}
	return es
}
