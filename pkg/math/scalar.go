package math

import "math"

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sin is float32 sine.
func Sin(a float32) float32 {
	return float32(math.Sin(float64(a)))
}

// Cos is float32 cosine.
func Cos(a float32) float32 {
	return float32(math.Cos(float64(a)))
}

// Sqrt is float32 square root.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}

// RadialDir returns the outward unit vector at angle a (radians) around the
// Y axis. Angle 0 points along +X and angles grow towards +Z.
func RadialDir(a float32) Vec3 {
	return Vec3{Cos(a), 0, Sin(a)}
}

// TangentDir returns the direction of increasing angle at a.
func TangentDir(a float32) Vec3 {
	return Vec3{-Sin(a), 0, Cos(a)}
}
