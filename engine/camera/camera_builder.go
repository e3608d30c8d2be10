package camera

// CameraBuilderOption configures the projection side of a Camera. The pose side
// always comes from the attached CameraController.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view of the viewport.
//
// Parameters:
//   - fov: vertical field of view in radians
//
// Returns:
//   - CameraBuilderOption: option applied by NewCamera
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the viewport aspect ratio. The engine overwrites it on every
// window resize.
//
// Parameters:
//   - aspect: viewport width divided by height
//
// Returns:
//   - CameraBuilderOption: option applied by NewCamera
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clip distance. Keep it small enough that a camera
// parked on a point of interest does not clip nearby geometry.
//
// Parameters:
//   - near: near plane distance, greater than zero
//
// Returns:
//   - CameraBuilderOption: option applied by NewCamera
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clip distance, which bounds how far ahead a navigating
// viewer can see.
//
// Parameters:
//   - far: far plane distance, greater than near
//
// Returns:
//   - CameraBuilderOption: option applied by NewCamera
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithController binds the navigation controller whose pose drives the view
// matrix. Camera.Update re-reads the pose after each controller tick.
//
// Parameters:
//   - ctrl: the navigation controller for this viewport
//
// Returns:
//   - CameraBuilderOption: option applied by NewCamera
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
