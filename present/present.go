// Package present shows CPU-rendered frames in a GLFW window through a
// WebGPU fullscreen blit.
package present

import (
	_ "embed"
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed fullscreen.wgsl
var fullscreenWGSL string

var ErrNotInitialized = errors.New("presenter not initialized")

type Presenter struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler

	frameTex    *wgpu.Texture
	frameView   *wgpu.TextureView
	frameFormat wgpu.TextureFormat
	frameW      int
	frameH      int
	bindGroup   *wgpu.BindGroup
}

// New creates the surface for window and the blit pipeline.
func New(window *glfw.Window) (*Presenter, error) {
	p := &Presenter{}
	p.Instance = wgpu.CreateInstance(nil)
	p.Surface = p.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := p.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: p.Surface,
		PowerPreference:   wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	p.Adapter = adapter

	p.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	p.Queue = p.Device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := p.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, errors.New("surface reports no formats")
	}
	format := caps.Formats[0]
	p.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	p.Surface.Configure(adapter, p.Device, p.Config)

	// Frames arrive sRGB encoded. Sampling through an sRGB view decodes them
	// so an sRGB surface encodes them back exactly once.
	p.frameFormat = wgpu.TextureFormatRGBA8Unorm
	if format == wgpu.TextureFormatBGRA8UnormSrgb || format == wgpu.TextureFormatRGBA8UnormSrgb {
		p.frameFormat = wgpu.TextureFormatRGBA8UnormSrgb
	}

	module, err := p.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Fullscreen VS/FS",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fullscreenWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("blit shader: %w", err)
	}
	defer module.Release()

	p.pipeline, err = p.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Blit Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("blit pipeline: %w", err)
	}

	p.sampler, err = p.Device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("sampler: %w", err)
	}
	return p, nil
}

// Resize reconfigures the surface. Zero sizes (minimized windows) are
// ignored; repeating the current size is a no-op.
func (p *Presenter) Resize(w, h int) {
	if p == nil || p.Config == nil || w <= 0 || h <= 0 {
		return
	}
	if p.Config.Width == uint32(w) && p.Config.Height == uint32(h) {
		return
	}
	p.Config.Width = uint32(w)
	p.Config.Height = uint32(h)
	p.Surface.Configure(p.Adapter, p.Device, p.Config)
}

func (p *Presenter) setupFrameTexture(w, h int) error {
	if p.frameTex != nil && p.frameW == w && p.frameH == h {
		return nil
	}
	p.releaseFrameTexture()

	var err error
	p.frameTex, err = p.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Frame Tex",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        p.frameFormat,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("frame texture: %w", err)
	}
	p.frameView, err = p.frameTex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("frame view: %w", err)
	}
	p.bindGroup, err = p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: p.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.frameView},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("blit bind group: %w", err)
	}
	p.frameW, p.frameH = w, h
	return nil
}

// Present uploads img and draws it over the whole surface.
func (p *Presenter) Present(img *image.RGBA) error {
	if p == nil || p.Device == nil {
		return ErrNotInitialized
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := p.setupFrameTexture(w, h); err != nil {
		return err
	}
	p.Queue.WriteTexture(p.frameTex.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: uint32(h),
	}, &wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1})

	nextTexture, err := p.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := p.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{0, 0, 0, 1},
		}},
	})
	rPass.SetPipeline(p.pipeline)
	rPass.SetBindGroup(0, p.bindGroup, nil)
	rPass.Draw(3, 1, 0, 0)
	if err := rPass.End(); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}
	rPass.Release() // before Finish

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmd.Release()
	p.Queue.Submit(cmd)
	p.Surface.Present()
	return nil
}

func (p *Presenter) releaseFrameTexture() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.frameView != nil {
		p.frameView.Release()
		p.frameView = nil
	}
	if p.frameTex != nil {
		p.frameTex.Release()
		p.frameTex = nil
	}
}

// Release frees every GPU object. The presenter is unusable afterwards.
func (p *Presenter) Release() {
	if p == nil {
		return
	}
	p.releaseFrameTexture()
	if p.sampler != nil {
		p.sampler.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.Queue != nil {
		p.Queue.Release()
	}
	if p.Device != nil {
		p.Device.Release()
	}
	if p.Adapter != nil {
		p.Adapter.Release()
	}
	if p.Surface != nil {
		p.Surface.Release()
	}
	if p.Instance != nil {
		p.Instance.Release()
	}
	*p = Presenter{}
}
