package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstrain(t *testing.T) {
	assert.Equal(t, 1.0, Constrain(5.0, -1, 1))
	assert.Equal(t, -1.0, Constrain(-5.0, -1, 1))
	assert.Equal(t, 0.5, Constrain(0.5, -1, 1))
}

func TestConstrainOneSidePositiveLimit(t *testing.T) {
	// positive limit bounds to [0, limit]
	assert.Equal(t, 3.0, ConstrainOneSide(7.0, 3.0))
	assert.Equal(t, 0.0, ConstrainOneSide(-2.0, 3.0))
	assert.Equal(t, 1.0, ConstrainOneSide(1.0, 3.0))
}

func TestConstrainOneSideNegativeLimit(t *testing.T) {
	// negative limit bounds to [limit, 0]
	assert.Equal(t, -3.0, ConstrainOneSide(-7.0, -3.0))
	assert.Equal(t, 0.0, ConstrainOneSide(2.0, -3.0))
	assert.Equal(t, -1.0, ConstrainOneSide(-1.0, -3.0))
}

func TestConstrainOneSideZeroLimit(t *testing.T) {
	assert.Equal(t, 0.0, ConstrainOneSide(4.0, 0))
	assert.Equal(t, 0.0, ConstrainOneSide(-4.0, 0))
}
