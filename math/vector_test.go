package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2Unit(t *testing.T) {
	u := Vector2{X: 3, Y: 4}.Unit()
	assert.InDelta(t, 1, u.Length(), 1e-12)
	assert.InDelta(t, 0.6, u.X, 1e-12)
	assert.InDelta(t, 0.8, u.Y, 1e-12)
}

func TestVector2UnitZero(t *testing.T) {
	u := Vector2{}.Unit()
	assert.Equal(t, 0.0, u.X)
	assert.Equal(t, 0.0, u.Y)
}

func TestVector2Heading(t *testing.T) {
	assert.InDelta(t, 0, Vector2{X: 1, Y: 0}.Heading(), 1e-12)
	assert.InDelta(t, math.Pi/2, Vector2{X: 0, Y: 1}.Heading(), 1e-12)
	assert.InDelta(t, math.Pi, Vector2{X: -1, Y: 1e-18}.Heading(), 1e-9)
}

func TestVector3XY(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, Vector2{X: 1, Y: 2}, v.XY())
	assert.Equal(t, [3]float64{1, 2, 3}, v.Array())
}
