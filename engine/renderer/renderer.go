package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-nav/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank (FIFO).
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately.
	PresentModeUncapped
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend *wgpuRendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           wgpu.Color
}

// Renderer defines the interface for the rendering collaborator of a viewport.
//
// Each frame it uploads the camera uniform (view-projection, position and
// orientation of the live pose) to a GPU buffer and runs a clear pass on the
// window surface. Scene geometry is out of its scope.
type Renderer interface {
	// Resize reconfigures the surface for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Render uploads the camera uniform and presents one frame.
	//
	// Parameters:
	//   - cam: the camera whose pose is drawn
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or submitted
	Render(cam camera.Camera) error

	// CameraBuffer returns the GPU buffer holding the camera uniform, or nil before the first Render.
	//
	// Returns:
	//   - *wgpu.Buffer: the uniform buffer
	CameraBuffer() *wgpu.Buffer

	// Release frees all GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer presenting to the surface described by surfaceDescriptor.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, typically window.Window.SurfaceDescriptor()
//   - width, height: initial surface size in pixels
//   - options: functional options applied before the GPU device is created
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter or device could be obtained
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("surface descriptor is nil")
	}
	r := &renderer{
		mu:          &sync.Mutex{},
		presentMode: PresentModeVSync,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.presentMode, r.clearColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
	}
	r.backend = backend
	r.backend.configureSurface(width, height)
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.configureSurface(width, height)
}

func (r *renderer) Render(cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uniform := cam.Uniform()
	if err := r.backend.writeCameraUniform(uniform.Marshal()); err != nil {
		return fmt.Errorf("failed to upload camera uniform: %w", err)
	}
	return r.backend.present()
}

func (r *renderer) CameraBuffer() *wgpu.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.cameraBuffer
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.release()
}
