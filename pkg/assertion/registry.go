package assertion

import (
	"sort"
	"sync"

	"digital.vasic.chinotto/pkg/logging"
)

// Method is an assertion invoked with arguments, like
// pointingTo(target).
type Method func(a *Assertion, args ...any) error

// Property is an assertion invoked without arguments, like
// directory or existOnDisk.
type Property func(a *Assertion) error

// Kind tells methods and properties apart.
type Kind int

const (
	// KindNone is returned for names that are not registered.
	KindNone Kind = iota
	// KindMethod marks assertions invoked with Call.
	KindMethod
	// KindProperty marks assertions invoked with Prop.
	KindProperty
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	default:
		return "none"
	}
}

// Registrar is the capability plugins need to install
// assertions. Both Register calls leave an existing name alone
// and report whether the handler was installed.
type Registrar interface {
	RegisterMethod(name string, fn Method) bool
	RegisterProperty(name string, fn Property) bool
	Has(name string) bool
}

type entry struct {
	kind     Kind
	method   Method
	property Property
}

// Registry holds the named assertions available to chains
// started with Expect. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to trace registrations.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a Registry with the built-in assertions
// pre-registered.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
		logger:  logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerDefaults()
	return r
}

// Default is the package-level registry used by the
// package-level Expect.
var Default = NewRegistry()

// Expect starts an assertion chain on the Default registry.
func Expect(subject any) *Assertion {
	return Default.Expect(subject)
}

// RegisterMethod installs fn under name unless the name is
// taken.
func (r *Registry) RegisterMethod(name string, fn Method) bool {
	return r.register(name, entry{kind: KindMethod, method: fn})
}

// RegisterProperty installs fn under name unless the name is
// taken.
func (r *Registry) RegisterProperty(name string, fn Property) bool {
	return r.register(name, entry{kind: KindProperty, property: fn})
}

func (r *Registry) register(name string, e entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.entries[name]; exists {
		r.logger.Debug("assertion already registered, skipping",
			logging.StringField("name", name),
			logging.StringField("kind", existing.kind.String()),
		)
		return false
	}

	r.entries[name] = e
	r.logger.Debug("assertion registered",
		logging.StringField("name", name),
		logging.StringField("kind", e.kind.String()),
	)
	return true
}

// OverwriteMethod installs fn under name, replacing whatever was
// registered before.
func (r *Registry) OverwriteMethod(name string, fn Method) {
	r.overwrite(name, entry{kind: KindMethod, method: fn})
}

// OverwriteProperty installs fn under name, replacing whatever
// was registered before.
func (r *Registry) OverwriteProperty(name string, fn Property) {
	r.overwrite(name, entry{kind: KindProperty, property: fn})
}

func (r *Registry) overwrite(name string, e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = e
	r.logger.Debug("assertion overwritten",
		logging.StringField("name", name),
		logging.StringField("kind", e.kind.String()),
	)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[name]
	return exists
}

// Kind reports how name is invoked, or KindNone if it is not
// registered.
func (r *Registry) Kind(name string) Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].kind
}

// Names returns all registered names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}
