package math

func Constrain[T float64 | float32](val T, low T, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// ConstrainOneSide clips val into the interval between zero and limit. The
// sign of limit selects which side of zero is bounded:
//   - limit = -5 constrains val to [-5, 0]
//   - limit = 5 constrains val to [0, 5]
//   - limit = 0 always yields 0
func ConstrainOneSide[T float64 | float32](val T, limit T) T {
	var low, high T
	if limit < 0 {
		low = limit
	}
	if limit > 0 {
		high = limit
	}
	return Constrain(val, low, high)
}
