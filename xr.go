package headless

// Rotation3D is a rotation quaternion.
type Rotation3D struct {
	I, J, K, R float32
}

// IdentityRotation is the rotation that leaves every vector unchanged.
func IdentityRotation() Rotation3D {
	return Rotation3D{R: 1}
}

// IsIdentity reports whether q is the identity rotation.
func (q Rotation3D) IsIdentity() bool {
	return q == IdentityRotation()
}

// Vector3D is a 3D translation.
type Vector3D struct {
	X, Y, Z float32
}

// NativeWidget is a platform widget handle an XR device renders into.
type NativeWidget any

// GLWindow is a secondary rendering target used by XR devices.
type GLWindow interface {
	// NativeWidget returns the widget the device presents to.
	NativeWidget(device any) NativeWidget

	// Rotation returns the window's rotation relative to the viewer.
	Rotation() Rotation3D

	// Translation returns the window's translation relative to the viewer.
	Translation() Vector3D
}

// NewGLWindow returns ErrUnavailable: headless mode never creates
// secondary on-screen targets.
func (h *Host) NewGLWindow() (GLWindow, error) {
	return nil, ErrUnavailable
}

// NativeWidget panics. Headless hosts have no native widget; only an
// on-screen secondary target would implement it.
func (h *Host) NativeWidget(device any) NativeWidget {
	panic("headless: NativeWidget is not implemented for headless hosts")
}

// Rotation returns the identity rotation.
func (h *Host) Rotation() Rotation3D {
	return IdentityRotation()
}

// Translation returns the zero vector.
func (h *Host) Translation() Vector3D {
	return Vector3D{}
}

// Ensure Host implements GLWindow.
var _ GLWindow = (*Host)(nil)
