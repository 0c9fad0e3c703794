// Package headless provides a window-less display host for rendering and
// compositing engines.
//
// # Overview
//
// A compositor normally drives a real window: it polls the window for
// events, pushes resize requests, asks for viewport and framebuffer
// geometry, and checks capabilities such as animation state or GL context
// availability. In a headless session there is no window and no platform
// event loop. [Host] stands in for the window: it owns an off-screen
// surface, records resize requests, synthesizes the single event kind a
// compositor needs (resize), and answers geometry and capability queries.
//
// # Quick Start
//
//	import "github.com/gogpu/headless"
//
//	host, err := headless.New(headless.Sz(1024, 768),
//	    headless.WithDevicePixelRatio(2))
//	if err != nil {
//	    log.Fatal(err) // no surface, nothing to render into
//	}
//	defer host.Close()
//
//	for frame := 0; frame < 60; frame++ {
//	    for _, ev := range host.PollEvents() {
//	        if ev.Kind == headless.EventResize {
//	            coords := host.Coordinates()
//	            // reallocate framebuffers to coords.Framebuffer
//	        }
//	    }
//	    // composite...
//	}
//
// # Events
//
// Resize notifications are edge-triggered: any number of Resize calls
// between two polls collapse into one [EventResize]. A same-size Resize
// still produces the event, so a compositor can use Resize to request a
// redraw.
//
// # Pixel density
//
// Sizes passed to [Host.Resize] are density-independent. The optional
// device pixel ratio (default 1.0) converts them to device pixels, e.g.
// [Host.PageHeight] multiplies the realized surface height by it.
//
// # Capabilities
//
// Media, XR and platform-input subsystems do not exist in headless mode.
// Their accessors return explicit "unknown"/"none" variants or
// [ErrUnavailable]. Translating a platform event panics, since a headless
// session never receives one.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to enable log output.
//
// # Thread safety
//
// A Host is driven by a single compositor goroutine. It is NOT safe for
// concurrent mutation.
package headless
