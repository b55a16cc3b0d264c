package filter

import (
	"errors"
	"fmt"
	"html/template"
	"reflect"
	"sort"
	"sync"

	"github.com/cpucorecore/datelabel/internal/monitor"
)

var (
	ErrEmptyName = errors.New("empty filter name")
	ErrNotFunc   = errors.New("filter is not a template function")
	ErrDuplicate = errors.New("filter already registered")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Registry is a named table of display transforms that templates can call.
type Registry struct {
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewRegistry() *Registry {
	return &Registry{funcs: template.FuncMap{}}
}

// Register adds fn under name. fn must return one value, or a value and an error.
func (r *Registry) Register(name string, fn any) error {
	if name == "" {
		return ErrEmptyName
	}
	if err := checkFunc(fn); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFunc, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.funcs[name] = fn
	monitor.SetFiltersRegistered(len(r.funcs))
	return nil
}

func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FuncMap returns a copy suitable for template.Funcs.
func (r *Registry) FuncMap() template.FuncMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := make(template.FuncMap, len(r.funcs))
	for name, fn := range r.funcs {
		m[name] = fn
	}
	return m
}

func checkFunc(fn any) error {
	if fn == nil {
		return errors.New("nil")
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("got %T", fn)
	}
	switch {
	case t.NumOut() == 1:
		return nil
	case t.NumOut() == 2 && t.Out(1) == errorType:
		return nil
	default:
		return fmt.Errorf("bad result count %d", t.NumOut())
	}
}
