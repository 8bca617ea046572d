// Package plugin loads bundles of assertions into a registry in
// a fixed order. Because registration never replaces a name, the
// plugin initialised first owns any name two plugins share.
package plugin

import (
	"fmt"
	"sync"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/logging"
)

// Plugin is a named, versioned set of assertions.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init installs the plugin's assertions through ctx.
	Init(ctx *Context) error
}

// Context is what a plugin receives during initialisation.
type Context struct {
	// Assertions is where the plugin registers its handlers.
	Assertions assertion.Registrar
	Logger     logging.Logger
	Config     map[string]any
}

// logger returns the context logger, or a NullLogger.
func (c *Context) logger() logging.Logger {
	if c == nil || c.Logger == nil {
		return logging.NullLogger{}
	}
	return c.Logger
}

// funcPlugin adapts an init function to Plugin.
type funcPlugin struct {
	name    string
	version string
	init    func(*Context) error
}

// New returns a Plugin that runs init when initialised.
func New(name, version string, init func(*Context) error) Plugin {
	return &funcPlugin{name: name, version: version, init: init}
}

func (p *funcPlugin) Name() string    { return p.name }
func (p *funcPlugin) Version() string { return p.version }

func (p *funcPlugin) Init(ctx *Context) error {
	if ctx == nil || ctx.Assertions == nil {
		return fmt.Errorf("plugin %q: no assertion registrar", p.name)
	}
	return p.init(ctx)
}

// Registry manages plugin registration and initialization.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes, in registration order, all plugins that
// haven't been loaded yet.
func (r *Registry) InitAll(ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	return r.initLocked(name, ctx)
}

func (r *Registry) initLocked(name string, ctx *Context) error {
	if r.loaded[name] {
		return nil
	}
	p := r.plugins[name]
	if err := p.Init(ctx); err != nil {
		return fmt.Errorf("init plugin %q: %w", name, err)
	}
	r.loaded[name] = true
	ctx.logger().Info("plugin loaded",
		logging.StringField("plugin", name),
		logging.StringField("version", p.Version()),
	)
	return nil
}

// List returns all registered plugin names in registration
// order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
