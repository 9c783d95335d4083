package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	mesh := buildMesh(t, loadFixture(t, "spiral"))
	for i, center := range mesh.Centers() {
		located, ok := mesh.Locate(center)
		assert.True(t, ok)
		assert.Equal(t, i, located, "center of triangle %d", i)
	}

	// Inside the hole of the spiral
	_, ok := mesh.Locate(Point{X: 6, Y: 7})
	assert.False(t, ok)
	_, ok = mesh.Locate(Point{X: 20, Y: 20})
	assert.False(t, ok)

	var empty *Mesh
	_, ok = empty.Locate(Point{})
	assert.False(t, ok)
}
