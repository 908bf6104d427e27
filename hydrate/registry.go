package hydrate

import (
	"errors"
	"reflect"
	"slices"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/xerrors"
)

var (
	// ErrUnknownClass is returned when no type is registered under a name.
	ErrUnknownClass = errors.New("hydrate: unknown class")
	// ErrNotHydratable is returned when a registered type does not implement
	// Loader.
	ErrNotHydratable = errors.New("hydrate: class does not implement LoadFromRow")
)

var loaderType = reflect.TypeOf((*Loader)(nil)).Elem()

// Registry maps class identifiers, as stored in result columns or passed by
// callers, to the Go types they stand for. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]reflect.Type)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry used when none is configured.
func Default() *Registry {
	defaultRegistryOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}

// Register binds name to T. The constraint guarantees *T implements Loader.
func Register[T any, P Ptr[T]](r *Registry, name string) {
	r.set(name, reflect.TypeOf((*T)(nil)).Elem())
}

// Add binds name to the type of sample, which may be a value or a pointer.
// Whether the type implements Loader is checked when it is instantiated.
func (r *Registry) Add(name string, sample any) {
	t := reflect.TypeOf(sample)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.set(name, t)
}

func (r *Registry) set(name string, t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.types)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Check verifies name resolves to a hydratable type without allocating.
func (r *Registry) Check(name string) error {
	_, err := r.lookup(name)
	return err
}

// New allocates a zero value of the type registered under name.
func (r *Registry) New(name string) (Loader, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return reflect.New(t).Interface().(Loader), nil
}

func (r *Registry) lookup(name string) (reflect.Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok || t == nil {
		return nil, xerrors.Errorf("%q: %w", name, ErrUnknownClass)
	}
	if !reflect.PointerTo(t).Implements(loaderType) {
		return nil, xerrors.Errorf("%q (%s): %w", name, t, ErrNotHydratable)
	}
	return t, nil
}
