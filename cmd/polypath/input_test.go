package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPolygon(t *testing.T) {
	points, err := readPolygon("", strings.NewReader("\n# a triangle\n0 0\n4 0\n  4 3 \n0 0\n\n9 9\n"))
	require.NoError(t, err)
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}}, points)

	_, err = readPolygon("", strings.NewReader("0 0\n4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	path := filepath.Join(t.TempDir(), "triangle.svg")
	require.NoError(t, os.WriteFile(path, []byte(`<svg xmlns="http://www.w3.org/2000/svg"><polygon points="0,0 4,0 4,3" /></svg>`), 0o644))
	points, err = readPolygon(path, nil)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	_, err = readPolygon(filepath.Join(t.TempDir(), "missing.svg"), nil)
	assert.Error(t, err)
}

func TestParseCoordinate(t *testing.T) {
	p, err := parseCoordinate("1.5,-2")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 1.5, Y: -2}, p)

	for _, bad := range []string{"", "1", "1,2,3,4", "a,b"} {
		_, err := parseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}
