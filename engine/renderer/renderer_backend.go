package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// rendererBackend is the GPU API surface the renderer needs: a swapchain that can be
// configured, cleared and presented.
type rendererBackend interface {
	ConfigureSurface(width, height int)
	// SetPresentMode takes effect at the next ConfigureSurface.
	SetPresentMode(mode PresentMode)
	BeginFrame(clear wgpu.Color) error
	EndFrame()
	Present()
	Release()
}
