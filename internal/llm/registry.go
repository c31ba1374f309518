package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a provider from its configuration.
type Factory func(cfg ProviderConfig) (Provider, error)

// Registry maps provider names to their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a provider factory to the registry.
func (r *Registry) Register(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("cannot register nil factory")
	}
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider already registered: %s", name)
	}

	r.factories[name] = f
	return nil
}

// New builds the named provider.
func (r *Registry) New(name string, cfg ProviderConfig) (Provider, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("provider not found: %s (available: %v)", name, r.List())
	}
	return f(cfg)
}

// List returns all registered provider names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a provider is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Count returns the number of registered providers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Unregister removes a provider from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("provider not found: %s", name)
	}
	delete(r.factories, name)
	return nil
}

// DefaultRegistry holds the built-in providers.
var DefaultRegistry = NewRegistry()

func init() {
	for name, f := range map[string]Factory{
		"anthropic": NewAnthropic,
		"openai":    NewOpenAI,
		"gemini":    NewGemini,
		"ollama":    NewOllama,
	} {
		if err := DefaultRegistry.Register(name, f); err != nil {
			panic(err)
		}
	}
}

// New builds a provider from the default registry.
func New(name string, cfg ProviderConfig) (Provider, error) {
	return DefaultRegistry.New(name, cfg)
}

// List returns all provider names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}
