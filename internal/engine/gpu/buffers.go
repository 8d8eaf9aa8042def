// Package gpu uploads the cylinder mesh into static OpenGL buffer objects.
//
// Everything here must run on the thread that owns the GL context, after
// the context has been made current.
package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/internal/mesh"
)

// ErrOutOfMemory is returned when the driver cannot allocate buffer storage.
var ErrOutOfMemory = errors.New("gpu: out of memory")

// MeshBuffers holds the vertex, normal and index buffers of one mesh.
type MeshBuffers struct {
	vertex uint32
	normal uint32
	index  uint32
	count  int32

	released bool
}

// Upload copies m into three GL_STATIC_DRAW buffers. On failure any buffer
// already created is deleted before returning.
func Upload(m *mesh.Cylinder) (*MeshBuffers, error) {
	b := &MeshBuffers{count: int32(len(m.Indices))}

	var err error
	b.vertex, err = newBuffer(gl.ARRAY_BUFFER, len(m.Vertices)*4, slicePtr(m.Vertices))
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("vertex buffer: %w", err)
	}

	b.normal, err = newBuffer(gl.ARRAY_BUFFER, len(m.Normals)*4, slicePtr(m.Normals))
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("normal buffer: %w", err)
	}

	b.index, err = newBuffer(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, slicePtr(m.Indices))
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("index buffer: %w", err)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	logger.Debug("mesh buffers created",
		zap.Uint32("vertex", b.vertex),
		zap.Uint32("normal", b.normal),
		zap.Uint32("index", b.index),
		zap.Int32("count", b.count),
	)
	return b, nil
}

// IndexCount returns the number of indices in the index buffer.
func (b *MeshBuffers) IndexCount() int {
	return int(b.count)
}

// Bind enables the vertex and normal client arrays and binds all three
// buffers. The returned release func undoes every change; call it with
// defer so bound state never leaks into the next draw.
func (b *MeshBuffers) Bind() (release func()) {
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vertex)
	gl.VertexPointer(3, gl.FLOAT, 0, nil)

	gl.EnableClientState(gl.NORMAL_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normal)
	gl.NormalPointer(gl.FLOAT, 0, nil)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.index)

	return func() {
		gl.DisableClientState(gl.VERTEX_ARRAY)
		gl.DisableClientState(gl.NORMAL_ARRAY)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}
}

// Draw issues one indexed triangle draw over the whole mesh.
func (b *MeshBuffers) Draw() error {
	if b.released {
		return errors.New("gpu: draw after release")
	}

	return checked(func() {
		release := b.Bind()
		defer release()

		gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, nil)
	})
}

// Release deletes the three buffers. Only the first call has any effect.
func (b *MeshBuffers) Release() {
	if b.released {
		return
	}
	b.released = true

	for _, id := range []*uint32{&b.vertex, &b.normal, &b.index} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	logger.Debug("mesh buffers deleted")
}

func newBuffer(target uint32, size int, data unsafe.Pointer) (uint32, error) {
	var id uint32
	err := checked(func() {
		gl.GenBuffers(1, &id)
		gl.BindBuffer(target, id)
		gl.BufferData(target, size, data, gl.STATIC_DRAW)
	})
	if err != nil {
		gl.BindBuffer(target, 0)
		gl.DeleteBuffers(1, &id)
		return 0, err
	}
	return id, nil
}

// slicePtr returns a pointer to the first element, or nil for an empty
// slice (gl.Ptr panics on those).
func slicePtr[T float32 | uint32](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

// getError is swapped out in tests.
var getError = gl.GetError

// checked runs fn and reports the first GL error it raised. Errors queued
// before fn are discarded so they are not blamed on it.
func checked(fn func()) error {
	drainErrors()
	fn()
	return checkError()
}

func checkError() error {
	switch code := getError(); code {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return ErrOutOfMemory
	default:
		return fmt.Errorf("gpu: GL error 0x%04x", code)
	}
}

// drainErrors clears errors left over from earlier calls, such as the
// immediate-mode axes drawn earlier in the frame.
func drainErrors() {
	for i := 0; i < 16 && getError() != gl.NO_ERROR; i++ {
	}
}
