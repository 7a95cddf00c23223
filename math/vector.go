package math

import (
	m "math"
)

// UNIT_EPSILON is the squared-length floor below which a vector is
// treated as zero when normalizing.
const UNIT_EPSILON = 1e-9

type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Length() float64 {
	return m.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Unit returns the normalized vector, or the zero vector when the input is
// too short to carry a meaningful direction.
func (v Vector2) Unit() Vector2 {
	lenSq := v.X*v.X + v.Y*v.Y
	if lenSq < UNIT_EPSILON {
		return Vector2{}
	}
	inv := 1.0 / m.Sqrt(lenSq)
	return Vector2{X: v.X * inv, Y: v.Y * inv}
}

// Heading returns the direction of the vector in the horizontal plane,
// measured from the X axis toward the Y axis (NED yaw convention).
func (v Vector2) Heading() float64 {
	return m.Atan2(v.Y, v.X)
}

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vector3) XY() Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Length() float64 {
	return m.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Array returns the components indexed 0..2 for per-axis loops.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func Vector3FromArray(a [3]float64) Vector3 {
	return Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func (v Vector3) Unit() Vector3 {
	lenSq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lenSq < UNIT_EPSILON {
		return Vector3{}
	}
	inv := 1.0 / m.Sqrt(lenSq)
	return Vector3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}
