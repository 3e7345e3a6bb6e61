package render

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestUniforms_Layout(t *testing.T) {
	var u Uniforms
	assert.Equal(t, uintptr(240), unsafe.Sizeof(u))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(u.ColorA))
	assert.Equal(t, uintptr(160), unsafe.Offsetof(u.Resolution))
	assert.Equal(t, uintptr(176), unsafe.Offsetof(u.Time))
	assert.Equal(t, uintptr(220), unsafe.Offsetof(u.Mode))
	assert.Equal(t, uintptr(224), unsafe.Offsetof(u.Shape))
}

func TestCanvasDescriptor_Count(t *testing.T) {
	assert.Equal(t, 0, CanvasDescriptor{}.Count())
	assert.Equal(t, 2, CanvasDescriptor{Attributes: make([]float32, 6)}.Count())
}
