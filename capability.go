package headless

import "fmt"

// GLContext identifies the GL context a media player may share.
type GLContext uint8

const (
	// GLContextUnknown means no GL context is available.
	GLContextUnknown GLContext = iota
	// GLContextEGL is an EGL context.
	GLContextEGL
	// GLContextGLX is a GLX context.
	GLContextGLX
)

// String implements fmt.Stringer.
func (c GLContext) String() string {
	switch c {
	case GLContextUnknown:
		return "unknown"
	case GLContextEGL:
		return "egl"
	case GLContextGLX:
		return "glx"
	default:
		return fmt.Sprintf("GLContext(%d)", c)
	}
}

// NativeDisplay identifies the native display a media player may bind to.
type NativeDisplay uint8

const (
	// NativeDisplayUnknown means no native display is available.
	NativeDisplayUnknown NativeDisplay = iota
	// NativeDisplayEGL is an EGL display.
	NativeDisplayEGL
	// NativeDisplayWayland is a Wayland display.
	NativeDisplayWayland
	// NativeDisplayX11 is an X11 display.
	NativeDisplayX11
)

// String implements fmt.Stringer.
func (d NativeDisplay) String() string {
	switch d {
	case NativeDisplayUnknown:
		return "unknown"
	case NativeDisplayEGL:
		return "egl"
	case NativeDisplayWayland:
		return "wayland"
	case NativeDisplayX11:
		return "x11"
	default:
		return fmt.Sprintf("NativeDisplay(%d)", d)
	}
}

// GLAPI identifies the GL API flavour of a shared context.
type GLAPI uint8

const (
	// GLAPINone means there is no GL API.
	GLAPINone GLAPI = iota
	// GLAPIOpenGL is desktop OpenGL.
	GLAPIOpenGL
	// GLAPIOpenGL3 is OpenGL 3 core profile.
	GLAPIOpenGL3
	// GLAPIGLES2 is OpenGL ES 2.
	GLAPIGLES2
	// GLAPIGLES3 is OpenGL ES 3.
	GLAPIGLES3
)

// String implements fmt.Stringer.
func (a GLAPI) String() string {
	switch a {
	case GLAPINone:
		return "none"
	case GLAPIOpenGL:
		return "opengl"
	case GLAPIOpenGL3:
		return "opengl3"
	case GLAPIGLES2:
		return "gles2"
	case GLAPIGLES3:
		return "gles3"
	default:
		return fmt.Sprintf("GLAPI(%d)", a)
	}
}

// MediaContext bundles what a hardware media decoder needs from the host.
type MediaContext struct {
	Context GLContext
	Display NativeDisplay
	API     GLAPI
}

// GLContext returns GLContextUnknown: headless hosts share no GL context.
func (h *Host) GLContext() GLContext {
	return GLContextUnknown
}

// NativeDisplay returns NativeDisplayUnknown.
func (h *Host) NativeDisplay() NativeDisplay {
	return NativeDisplayUnknown
}

// GLAPI returns GLAPINone.
func (h *Host) GLAPI() GLAPI {
	return GLAPINone
}

// MediaContext returns the "unknown" media context and ErrUnavailable.
// Media players must fall back to software decoding.
func (h *Host) MediaContext() (MediaContext, error) {
	return MediaContext{
		Context: h.GLContext(),
		Display: h.NativeDisplay(),
		API:     h.GLAPI(),
	}, ErrUnavailable
}

// TranslatePlatformEvent panics. A headless session has no platform event
// source, so receiving a platform event is a caller defect.
func (h *Host) TranslatePlatformEvent(ev any) []Event {
	panic(fmt.Sprintf("headless: unexpected platform event %T in a headless session", ev))
}
