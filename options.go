package headless

import "github.com/gogpu/headless/surface"

// Option configures a Host during creation.
// Use functional options to customize Host behavior.
//
// Example:
//
//	// Default backend selection, density 1.0
//	host, err := headless.New(headless.Sz(800, 600))
//
//	// Retina-like density on the no-op backend
//	host, err := headless.New(headless.Sz(800, 600),
//	    headless.WithDevicePixelRatio(2),
//	    headless.WithBackend("noop"))
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	devicePixelRatio *float32
	backend          string
	registry         *surface.Registry
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		registry: surface.Default(),
	}
}

// WithDevicePixelRatio overrides the device pixel ratio (device pixels per
// density-independent pixel). Without it the host reports 1.0.
// The ratio must be positive and finite; New rejects other values.
func WithDevicePixelRatio(ratio float32) Option {
	return func(o *hostOptions) {
		o.devicePixelRatio = &ratio
	}
}

// WithBackend selects a surface backend by registry name (e.g. "noop",
// "vulkan"). An empty name selects the best available backend.
func WithBackend(name string) Option {
	return func(o *hostOptions) {
		o.backend = name
	}
}

// WithRegistry uses r instead of the global backend registry.
func WithRegistry(r *surface.Registry) Option {
	return func(o *hostOptions) {
		if r != nil {
			o.registry = r
		}
	}
}
