package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolReleasesNewestFirstOnce(t *testing.T) {
	var p Pool
	var order []string
	p.Add(func() { order = append(order, "shader") })
	p.Add(func() { order = append(order, "model") })
	p.Add(nil)
	assert.Equal(t, 2, p.Len())

	assert.Equal(t, 2, p.Release())
	assert.Equal(t, []string{"model", "shader"}, order)
	assert.Zero(t, p.Len())

	assert.Zero(t, p.Release())
	assert.Len(t, order, 2)
}
