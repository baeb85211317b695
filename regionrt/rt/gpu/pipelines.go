package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/shaders"
)

// view (64) + projection (64) + cell offset (16)
const cameraUniformSize = 144

const DepthFormat = wgpu.TextureFormatDepth24Plus

// PipelineCache builds one render pipeline per render layer on first use.
type PipelineCache struct {
	Device *wgpu.Device
	Format wgpu.TextureFormat

	Shader          *wgpu.ShaderModule
	CameraLayout    *wgpu.BindGroupLayout
	PipelineLayout  *wgpu.PipelineLayout
	CameraBuf       *wgpu.Buffer
	CameraBindGroup *wgpu.BindGroup

	pipelines map[*core.RenderLayer]*wgpu.RenderPipeline
}

func NewPipelineCache(device *wgpu.Device, format wgpu.TextureFormat) (*PipelineCache, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "CachedRegionShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.CachedWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cached region shader: %w", err)
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "CachedRegionCameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   cameraUniformSize,
					HasDynamicOffset: false,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera bind group layout: %w", err)
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	cameraBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "CachedRegionCamera",
		Size:  cameraUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera buffer: %w", err)
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: cameraBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create camera bind group: %w", err)
	}

	return &PipelineCache{
		Device:          device,
		Format:          format,
		Shader:          shaderModule,
		CameraLayout:    bgl,
		PipelineLayout:  layout,
		CameraBuf:       cameraBuf,
		CameraBindGroup: bindGroup,
		pipelines:       make(map[*core.RenderLayer]*wgpu.RenderPipeline),
	}, nil
}

func (c *PipelineCache) WriteCamera(u DrawUniforms) {
	c.Device.GetQueue().WriteBuffer(c.CameraBuf, 0, cameraBytes(u))
}

// Get returns the pipeline for layer, creating it if needed.
func (c *PipelineCache) Get(layer *core.RenderLayer) (*wgpu.RenderPipeline, error) {
	if p, ok := c.pipelines[layer]; ok {
		return p, nil
	}

	target := wgpu.ColorTargetState{
		Format:    c.Format,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if layer.Blend {
		target.Blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}
	}

	topology := wgpu.PrimitiveTopologyTriangleList
	if layer.Topology == core.TopologyLines {
		topology = wgpu.PrimitiveTopologyLineList
	}

	pipeline, err := c.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "CachedRegion " + layer.Name,
		Layout: c.PipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     c.Shader,
			EntryPoint: "vs_" + layer.Layout.Name,
			Buffers:    []wgpu.VertexBufferLayout{vertexBufferLayout(layer.Layout)},
		},
		Fragment: &wgpu.FragmentState{
			Module:     c.Shader,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: !layer.Blend,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline for layer %s: %w", layer, err)
	}
	c.pipelines[layer] = pipeline
	return pipeline, nil
}

func (c *PipelineCache) Release() {
	for layer, p := range c.pipelines {
		p.Release()
		delete(c.pipelines, layer)
	}
	if c.CameraBindGroup != nil {
		c.CameraBindGroup.Release()
	}
	if c.CameraBuf != nil {
		c.CameraBuf.Release()
	}
}

var shaderLocations = map[core.AttributeUsage]uint32{
	core.UsagePosition: 0,
	core.UsageColor:    1,
	core.UsageUV:       2,
	core.UsageOverlay:  3,
	core.UsageLight:    4,
	core.UsageNormal:   5,
}

func vertexBufferLayout(l *core.VertexLayout) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(l.Attributes))
	for _, a := range l.Attributes {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         vertexFormat(a.Format),
			Offset:         uint64(a.Offset),
			ShaderLocation: shaderLocations[a.Usage],
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(l.Stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

func vertexFormat(f core.AttributeFormat) wgpu.VertexFormat {
	switch f {
	case core.FormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case core.FormatFloat32x3:
		return wgpu.VertexFormatFloat32x3
	case core.FormatUnorm8x4:
		return wgpu.VertexFormatUnorm8x4
	case core.FormatUint16x2:
		return wgpu.VertexFormatUint16x2
	case core.FormatSnorm8x4:
		return wgpu.VertexFormatSnorm8x4
	}
	panic(fmt.Sprintf("unsupported vertex format %d", f))
}

func appendFloat(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}
