// Package container is the composition root that exposes the Runware SDK
// through named bindings.
//
// A Container is created from a Config and registers one factory per binding:
//
//	c := container.New(container.Config{APIKey: os.Getenv("RUNWARE_API_KEY")})
//	images, err := c.Runware().ImageInferenceMap(ctx, map[string]any{
//	    "positivePrompt": "a lighthouse at dusk",
//	})
//
// The typed accessors (Runware, ImageInference, Inpainting, ImageUpload,
// PhotoMaker) resolve their binding on every call and return the concrete SDK
// type, so every SDK method stays reachable. Tests can swap a binding for a
// fixed value with Instance.
package container

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petal-labs/runware/runware"
)

// Binding names.
const (
	BindingRunware        = "runware"
	BindingImageInference = "runware.imageInference"
	BindingInpainting     = "runware.inpainting"
	BindingImageUpload    = "runware.imageUpload"
	BindingPhotoMaker     = "runware.photoMaker"
)

// Config is the immutable configuration the bindings are built from.
type Config struct {
	// APIKey is passed to the SDK as is. It is not validated here.
	APIKey string

	// BaseURL overrides the API endpoint. Empty uses runware.DefaultBaseURL.
	BaseURL string
}

// Factory builds the value for a binding from the shared SDK client.
type Factory func(c *runware.Client) (any, error)

// Container holds binding factories and instance overrides. It is safe for
// concurrent use.
type Container struct {
	client *runware.Client

	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]any
}

// New creates a Container with the default bindings registered. opts are
// passed to runware.New after the Config's base URL. No network I/O happens
// here.
func New(cfg Config, opts ...runware.Option) *Container {
	clientOpts := append([]runware.Option{runware.WithBaseURL(cfg.BaseURL)}, opts...)

	c := &Container{
		client:    runware.New(cfg.APIKey, clientOpts...),
		factories: make(map[string]Factory),
		instances: make(map[string]any),
	}

	c.Bind(BindingRunware, func(cl *runware.Client) (any, error) {
		return runware.NewService(cl), nil
	})
	c.Bind(BindingImageInference, func(cl *runware.Client) (any, error) {
		return cl.ImageInference(), nil
	})
	c.Bind(BindingInpainting, func(cl *runware.Client) (any, error) {
		return cl.Inpainting(), nil
	})
	c.Bind(BindingImageUpload, func(cl *runware.Client) (any, error) {
		return cl.ImageUpload(), nil
	})
	c.Bind(BindingPhotoMaker, func(cl *runware.Client) (any, error) {
		return cl.PhotoMaker(), nil
	})

	return c
}

// Client returns the SDK client shared by all bindings.
func (c *Container) Client() *runware.Client {
	return c.client
}

// Bind registers a factory under name, replacing any existing one.
func (c *Container) Bind(name string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = f
}

// Instance binds a fixed value under name. It takes precedence over the
// factory until Forget is called.
func (c *Container) Instance(name string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = v
}

// Forget drops an instance override so name resolves through its factory again.
func (c *Container) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, name)
}

// Make resolves name. Builders come back fresh on every call. Factory errors
// are returned unchanged.
func (c *Container) Make(name string) (any, error) {
	c.mu.RLock()
	inst, hasInst := c.instances[name]
	f := c.factories[name]
	c.mu.RUnlock()

	if hasInst {
		return inst, nil
	}
	if f == nil {
		return nil, fmt.Errorf("unknown binding: %s (available: %v)", name, c.Names())
	}
	return f(c.client)
}

// Has reports whether name has a factory or an instance.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.factories[name]
	if !ok {
		_, ok = c.instances[name]
	}
	return ok
}

// Names returns all binding names in sorted order.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.factories)+len(c.instances))
	for name := range c.factories {
		seen[name] = struct{}{}
	}
	for name := range c.instances {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve makes name and asserts the result to T.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T

	v, err := c.Make(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("binding %s is %T, not %T", name, v, zero)
	}
	return t, nil
}

func mustResolve[T any](c *Container, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic("container: " + err.Error())
	}
	return v
}

// Runware returns the service bound as "runware".
func (c *Container) Runware() *runware.Service {
	return mustResolve[*runware.Service](c, BindingRunware)
}

// ImageInference returns a new text-to-image builder.
func (c *Container) ImageInference() *runware.ImageInference {
	return mustResolve[*runware.ImageInference](c, BindingImageInference)
}

// Inpainting returns a new inpainting builder.
func (c *Container) Inpainting() *runware.Inpainting {
	return mustResolve[*runware.Inpainting](c, BindingInpainting)
}

// ImageUpload returns a new upload builder.
func (c *Container) ImageUpload() *runware.ImageUpload {
	return mustResolve[*runware.ImageUpload](c, BindingImageUpload)
}

// PhotoMaker returns a new PhotoMaker builder.
func (c *Container) PhotoMaker() *runware.PhotoMaker {
	return mustResolve[*runware.PhotoMaker](c, BindingPhotoMaker)
}
