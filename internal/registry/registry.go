package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDuplicateItem  = errors.New("duplicate item")
	ErrUnknownCreator = errors.New("unknown creator")
)

// CreationError wraps the error returned by a failing factory.
type CreationError struct {
	Name string
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("error while creating '%s': %v", e.Name, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

type Factory[T any, D any] func(data D) (T, error)

// Registry maps names to factories. An item is created the first time it is
// requested and the same instance is returned for every later request.
type Registry[T any, D any] struct {
	mu        sync.Mutex
	data      D
	factories map[string]Factory[T, D]
	items     map[string]T
}

func New[T any, D any](data D) *Registry[T, D] {
	return &Registry[T, D]{
		data:      data,
		factories: make(map[string]Factory[T, D]),
		items:     make(map[string]T),
	}
}

func (r *Registry[T, D]) Register(name string, factory Factory[T, D]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w '%s'", ErrDuplicateItem, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is Register for start-up wiring, where a duplicate name is a
// programming error.
func (r *Registry[T, D]) MustRegister(name string, factory Factory[T, D]) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *Registry[T, D]) Get(name string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, ok := r.items[name]; ok {
		return item, nil
	}

	var zero T
	factory, ok := r.factories[name]
	if !ok {
		return zero, fmt.Errorf("%w '%s'", ErrUnknownCreator, name)
	}

	item, err := factory(r.data)
	if err != nil {
		return zero, &CreationError{Name: name, Err: err}
	}
	r.items[name] = item
	return item, nil
}

func (r *Registry[T, D]) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.factories[name]
	return ok
}

func (r *Registry[T, D]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
