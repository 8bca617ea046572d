// Package env reads settings from the process environment with
// a .env file as fallback.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Loader defines the interface for environment variable management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// GetWithDefault retrieves an environment variable with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// GetBool parses a boolean variable, falling back to
	// defaultValue when it is unset or malformed.
	GetBool(key string, defaultValue bool) bool
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader with .env file support. Keys
// may be looked up with or without the configured prefix.
type DefaultLoader struct {
	mu     sync.RWMutex
	vars   map[string]string
	loaded bool
	prefix string
}

// NewLoader creates a loader that tries prefix+key before key.
func NewLoader(prefix string) *DefaultLoader {
	return &DefaultLoader{
		vars:   make(map[string]string),
		prefix: prefix,
	}
}

func (l *DefaultLoader) Load(filepath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		// Remove surrounding quotes
		value = strings.Trim(value, `"'`)
		l.vars[strings.TrimSpace(key)] = value
	}

	l.loaded = true
	return scanner.Err()
}

// Loaded reports whether a .env file has been read.
func (l *DefaultLoader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *DefaultLoader) Get(key string) string {
	if l.prefix != "" && !strings.HasPrefix(key, l.prefix) {
		if v := l.lookup(l.prefix + key); v != "" {
			return v
		}
	}
	return l.lookup(key)
}

func (l *DefaultLoader) lookup(key string) string {
	// OS env takes precedence
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) GetBool(key string, defaultValue bool) bool {
	v := l.Get(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}
