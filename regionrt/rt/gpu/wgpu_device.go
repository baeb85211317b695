package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// WgpuDevice is the Device backed by a WebGPU device.
type WgpuDevice struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
}

func NewWgpuDevice(device *wgpu.Device) *WgpuDevice {
	return &WgpuDevice{Device: device, Queue: device.GetQueue()}
}

type wgpuBuffer struct {
	buf *wgpu.Buffer
}

func (b *wgpuBuffer) Size() uint64 {
	return b.buf.GetSize()
}

func (b *wgpuBuffer) Release() {
	b.buf.Release()
}

func wgpuUsage(u BufferUsage) wgpu.BufferUsage {
	switch u {
	case BufferUsageVertex:
		return wgpu.BufferUsageVertex
	case BufferUsageIndex:
		return wgpu.BufferUsageIndex
	case BufferUsageUniform:
		return wgpu.BufferUsageUniform
	}
	return wgpu.BufferUsage(0)
}

func (d *WgpuDevice) CreateBuffer(desc BufferDescriptor) (Buffer, error) {
	buf, err := d.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             alignSize(desc.Size),
		Usage:            wgpuUsage(desc.Usage) | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{buf: buf}, nil
}

func (d *WgpuDevice) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	wb, ok := buf.(*wgpuBuffer)
	if !ok {
		return fmt.Errorf("buffer %T was not created by a wgpu device", buf)
	}
	if len(data) == 0 {
		return nil
	}
	d.Queue.WriteBuffer(wb.buf, offset, data)
	return nil
}

// WgpuPass records cached layer draws into an open render pass.
type WgpuPass struct {
	Encoder   *wgpu.RenderPassEncoder
	Pipelines *PipelineCache

	written  bool
	uniforms DrawUniforms
}

func NewWgpuPass(encoder *wgpu.RenderPassEncoder, pipelines *PipelineCache) *WgpuPass {
	return &WgpuPass{Encoder: encoder, Pipelines: pipelines}
}

func (p *WgpuPass) BeginLayer(layer *core.RenderLayer, uniforms DrawUniforms) error {
	pipeline, err := p.Pipelines.Get(layer)
	if err != nil {
		return err
	}
	// Queue writes land before the pass executes, so the camera block is
	// written once per distinct value.
	if !p.written || p.uniforms != uniforms {
		p.Pipelines.WriteCamera(uniforms)
		p.uniforms = uniforms
		p.written = true
	}
	p.Encoder.SetPipeline(pipeline)
	p.Encoder.SetBindGroup(0, p.Pipelines.CameraBindGroup, nil)
	return nil
}

func (p *WgpuPass) DrawIndexed(vertex Buffer, index Buffer, indexCount uint32) {
	vb := vertex.(*wgpuBuffer)
	ib := index.(*wgpuBuffer)
	p.Encoder.SetVertexBuffer(0, vb.buf, 0, wgpu.WholeSize)
	p.Encoder.SetIndexBuffer(ib.buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	p.Encoder.DrawIndexed(indexCount, 1, 0, 0, 0)
}

// EndLayer has nothing to undo: pipeline and bind group are rebound per layer
// and the camera offset lives in a uniform, not in shared pass state.
func (p *WgpuPass) EndLayer(layer *core.RenderLayer) {}

func cameraBytes(u DrawUniforms) []byte {
	data := make([]byte, 0, cameraUniformSize)
	data = appendMat4(data, u.View)
	data = appendMat4(data, u.Projection)
	data = appendVec4(data, u.CellOffset.Vec4(0))
	return data
}

func appendMat4(dst []byte, m mgl32.Mat4) []byte {
	for _, f := range m {
		dst = appendFloat(dst, f)
	}
	return dst
}

func appendVec4(dst []byte, v mgl32.Vec4) []byte {
	for _, f := range v {
		dst = appendFloat(dst, f)
	}
	return dst
}
