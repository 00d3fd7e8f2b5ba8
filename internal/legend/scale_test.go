package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearScale(t *testing.T) {
	t.Parallel()

	s := NewLinearScale(0, 40, 10, 290)
	assert.InDelta(t, 10, s.Map(0), 1e-9)
	assert.InDelta(t, 290, s.Map(40), 1e-9)
	assert.InDelta(t, 150, s.Map(20), 1e-9)
	assert.InDelta(t, 360, s.Map(50), 1e-9)
	assert.InDelta(t, 20, s.Invert(150), 1e-9)
}

func TestLinearScaleDegenerate(t *testing.T) {
	t.Parallel()

	s := NewLinearScale(5, 5, 0, 100)
	assert.InDelta(t, 50, s.Map(123), 1e-9)

	flat := NewLinearScale(0, 40, 10, 10)
	assert.InDelta(t, 20, flat.Invert(10), 1e-9)
}

func TestGeometryValueScale(t *testing.T) {
	t.Parallel()

	geo := ComputeGeometry(400, 300, Margin{Top: 10, Bottom: 10}, 0)
	assert.InDelta(t, 10, geo.ValueScale.Map(0), 1e-9)
	assert.InDelta(t, 290, geo.ValueScale.Map(40), 1e-9)
}
