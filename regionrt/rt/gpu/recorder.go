package gpu

import (
	"errors"
	"fmt"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
)

// RecordingDevice is a CPU-only Device. It keeps buffer contents in memory and
// counts every call, which makes it usable for headless runs and for tests.
type RecordingDevice struct {
	Buffers  []*RecordedBuffer
	Creates  int
	Writes   int
	Releases int

	// FailCreates makes the next n CreateBuffer calls fail.
	FailCreates int
}

var ErrInjected = errors.New("injected device failure")

type RecordedBuffer struct {
	Label    string
	Usage    BufferUsage
	Data     []byte
	Released bool

	device *RecordingDevice
}

func NewRecordingDevice() *RecordingDevice {
	return &RecordingDevice{}
}

func (d *RecordingDevice) CreateBuffer(desc BufferDescriptor) (Buffer, error) {
	if d.FailCreates > 0 {
		d.FailCreates--
		return nil, ErrInjected
	}
	d.Creates++
	buf := &RecordedBuffer{
		Label:  desc.Label,
		Usage:  desc.Usage,
		Data:   make([]byte, desc.Size),
		device: d,
	}
	d.Buffers = append(d.Buffers, buf)
	return buf, nil
}

func (d *RecordingDevice) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	rb, ok := buf.(*RecordedBuffer)
	if !ok {
		return fmt.Errorf("buffer %T does not belong to a recording device", buf)
	}
	if rb.Released {
		return fmt.Errorf("write to released buffer %q", rb.Label)
	}
	if offset+uint64(len(data)) > uint64(len(rb.Data)) {
		return fmt.Errorf("write of %d bytes at %d overflows buffer %q (%d bytes)", len(data), offset, rb.Label, len(rb.Data))
	}
	d.Writes++
	copy(rb.Data[offset:], data)
	return nil
}

// Live counts buffers created and not yet released.
func (d *RecordingDevice) Live() int {
	n := 0
	for _, b := range d.Buffers {
		if !b.Released {
			n++
		}
	}
	return n
}

// Calls is the total number of device calls made so far.
func (d *RecordingDevice) Calls() int {
	return d.Creates + d.Writes + d.Releases
}

func (b *RecordedBuffer) Size() uint64 {
	return uint64(len(b.Data))
}

func (b *RecordedBuffer) Release() {
	if b.Released {
		panic(fmt.Sprintf("buffer %q released twice", b.Label))
	}
	b.Released = true
	b.device.Releases++
}

// DrawCall is one draw recorded by a RecordingPass.
type DrawCall struct {
	Layer      *core.RenderLayer
	Vertex     *RecordedBuffer
	IndexCount uint32
	// Indices is a copy of the index buffer at draw time.
	Indices  []byte
	Uniforms DrawUniforms
}

// RecordingPass records draws instead of encoding them.
type RecordingPass struct {
	Draws []DrawCall
	// Depth is the number of BeginLayer calls without a matching EndLayer.
	Depth int

	layer    *core.RenderLayer
	uniforms DrawUniforms
}

func NewRecordingPass() *RecordingPass {
	return &RecordingPass{}
}

func (p *RecordingPass) BeginLayer(layer *core.RenderLayer, uniforms DrawUniforms) error {
	if p.layer != nil {
		return fmt.Errorf("layer %s begun while %s is bound", layer, p.layer)
	}
	p.layer = layer
	p.uniforms = uniforms
	p.Depth++
	return nil
}

func (p *RecordingPass) DrawIndexed(vertex Buffer, index Buffer, indexCount uint32) {
	vb, _ := vertex.(*RecordedBuffer)
	ib, _ := index.(*RecordedBuffer)
	call := DrawCall{
		Layer:      p.layer,
		Vertex:     vb,
		IndexCount: indexCount,
		Uniforms:   p.uniforms,
	}
	if ib != nil {
		call.Indices = append([]byte(nil), ib.Data...)
	}
	p.Draws = append(p.Draws, call)
}

func (p *RecordingPass) EndLayer(layer *core.RenderLayer) {
	p.layer = nil
	p.uniforms = DrawUniforms{}
	p.Depth--
}

// Bound is the layer currently bound, if any.
func (p *RecordingPass) Bound() *core.RenderLayer {
	return p.layer
}

func (p *RecordingPass) Reset() {
	p.Draws = p.Draws[:0]
	p.Depth = 0
	p.layer = nil
}
