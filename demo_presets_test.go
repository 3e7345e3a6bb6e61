package particlefx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()
	require.Len(t, presets, 5)

	seen := map[string]bool{}
	for _, p := range presets {
		assert.False(t, seen[p.Name], "duplicate preset %s", p.Name)
		seen[p.Name] = true
		assert.Positive(t, p.Count, p.Name)
		if p.Variant() == VariantShader {
			assert.NoError(t, NewShaderAnimator().Configure(p.Shader), p.Name)
		} else {
			assert.Positive(t, p.PointSize, p.Name)
		}
	}
	assert.Equal(t, VariantShader, GatherPreset().Variant())
	assert.Equal(t, VariantCPU, SwarmPreset().Variant())
}

func TestPresetByName(t *testing.T) {
	p, err := PresetByName("orbit")
	require.NoError(t, err)
	assert.Equal(t, 800, p.Count)

	_, err = PresetByName("fireworks")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestPresetByName_ReturnsFreshAnchor(t *testing.T) {
	a, _ := PresetByName("swarm")
	a.Anchor.Radius = 99
	b, _ := PresetByName("swarm")
	assert.Equal(t, float32(2), b.Anchor.Radius)
}
