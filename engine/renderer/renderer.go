package renderer

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-look/common"
	"github.com/Carmen-Shannon/oxy-look/engine/orientation"
	"github.com/Carmen-Shannon/oxy-look/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// groundColor is the clear color when looking straight down.
	groundColor = mgl64.Vec3{0.18, 0.14, 0.10}

	// skyColor is the clear color when looking straight up.
	skyColor = mgl64.Vec3{0.35, 0.55, 0.85}
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend rendererBackend

	orientation common.Orientation

	// width and height are the last surface size, reused when the present mode changes.
	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer clears the window surface to a horizon color derived from the view orientation.
// It is an orientation.Sink, so it can be fed directly by an accumulator or copied to each frame.
type Renderer interface {
	orientation.Sink

	// Orientation returns the angles the next Draw will use.
	//
	// Returns:
	//   - common.Orientation: pitch (X) and yaw (Y) in degrees
	Orientation() common.Orientation

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the presentation mode for the swap chain.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Draw clears the surface to HorizonColor of the current orientation and presents it.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	Draw() error

	// Release frees the GPU device and surface. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer bound to the window surface.
// Must be called on the window thread after the window is created.
//
// Parameters:
//   - window: the window providing the surface descriptor and initial size
//   - options: functional options applied before the GPU adapter is requested
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no adapter or device is available
func NewRenderer(window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu: &sync.Mutex{},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	r.backend = backend

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.Resize(window.Width(), window.Height())
	return r, nil
}

func (r *renderer) SetOrientation(o common.Orientation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orientation = o
}

func (r *renderer) Orientation() common.Orientation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orientation
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

// SetPresentMode reconfigures the surface at its current size so the mode applies to the next frame.
func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)

	r.mu.Lock()
	width, height := r.width, r.height
	r.mu.Unlock()
	if width > 0 && height > 0 {
		r.backend.ConfigureSurface(width, height)
	}
}

func (r *renderer) Draw() error {
	if err := r.backend.BeginFrame(HorizonColor(r.Orientation())); err != nil {
		return err
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}

// HorizonColor maps a view orientation to an opaque clear color.
// Pitch blends from ground (-90) to sky (+90); yaw dims the color up to 30% when facing away from -Z.
//
// Parameters:
//   - o: pitch (X) and yaw (Y) in degrees
//
// Returns:
//   - wgpu.Color: the clear color with alpha 1
func HorizonColor(o common.Orientation) wgpu.Color {
	t := mgl64.Clamp((o.X+90)/180, 0, 1)
	if math.IsNaN(t) {
		t = 0.5
	}
	shade := 0.85 + 0.15*math.Cos(common.DegToRad(o.Y))
	if math.IsNaN(shade) {
		shade = 1
	}

	c := groundColor.Add(skyColor.Sub(groundColor).Mul(t)).Mul(shade)
	return wgpu.Color{R: c[0], G: c[1], B: c[2], A: 1}
}
