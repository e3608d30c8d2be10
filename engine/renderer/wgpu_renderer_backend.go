package renderer

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackend owns the WebGPU instance, device and surface, plus the camera uniform buffer.
// Callers (renderer) serialize access.
type wgpuRendererBackend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	presentMode wgpu.PresentMode
	clearColor  wgpu.Color

	cameraBuffer     *wgpu.Buffer
	cameraBufferSize uint64
}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, mode PresentMode, clearColor wgpu.Color) (*wgpuRendererBackend, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		instance:   wgpu.CreateInstance(nil),
		clearColor: clearColor,
	}
	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, err
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewport Device",
	})
	if err != nil {
		return nil, err
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

// configureSurface (re)configures the swapchain for the given pixel size.
func (b *wgpuRendererBackend) configureSurface(width, height int) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      capabilities.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

// writeCameraUniform uploads data into the camera uniform buffer, creating it on first use.
func (b *wgpuRendererBackend) writeCameraUniform(data []byte) error {
	if b.cameraBuffer == nil || b.cameraBufferSize != uint64(len(data)) {
		if b.cameraBuffer != nil {
			b.cameraBuffer.Release()
		}
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            "Camera Uniform Buffer",
			Size:             uint64(len(data)),
			Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return err
		}
		b.cameraBuffer = buf
		b.cameraBufferSize = uint64(len(data))
	}
	b.queue.WriteBuffer(b.cameraBuffer, 0, data)
	return nil
}

// present acquires the next surface texture, clears it and presents it.
func (b *wgpuRendererBackend) present() error {
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackend) release() {
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
		b.cameraBuffer = nil
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
