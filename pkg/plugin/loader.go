package plugin

import (
	"fmt"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/logging"
)

// Loader registers plugins and initialises them against one
// assertion registry.
type Loader struct {
	registry *Registry
	ctx      *Context
}

// NewLoader creates a loader that installs into assertions.
func NewLoader(
	registry *Registry,
	assertions assertion.Registrar,
	logger logging.Logger,
) *Loader {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &Loader{
		registry: registry,
		ctx: &Context{
			Assertions: assertions,
			Logger:     logger,
			Config:     make(map[string]any),
		},
	}
}

// Context returns the context handed to every plugin. Config
// entries set on it before loading are visible to plugins.
func (l *Loader) Context() *Context {
	return l.ctx
}

// LoadAndInit registers and initializes a set of plugins.
func (l *Loader) LoadAndInit(plugins ...Plugin) error {
	for _, p := range plugins {
		if err := l.registry.Register(p); err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
	}
	return l.registry.InitAll(l.ctx)
}

// LoadOne registers and initializes a single plugin.
func (l *Loader) LoadOne(p Plugin) error {
	if err := l.registry.Register(p); err != nil {
		return fmt.Errorf("load plugin: %w", err)
	}
	return l.registry.Init(p.Name(), l.ctx)
}
