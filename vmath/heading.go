package vmath

import "math"

// Yaw is a heading in radians about +Y
// Yaw 0 faces +Z; positive yaw turns toward +X

// Forward returns the unit local +Z axis for a yaw
func Forward(yaw float64) Vec3F {
	return Vec3F{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// YawTowards returns the yaw that points local +Z from 'from' to 'to' on the XZ plane
// Returns fallback when the points coincide on XZ
func YawTowards(from, to Vec3F, fallback float64) float64 {
	dx := to.X - from.X
	dz := to.Z - from.Z
	if dx == 0 && dz == 0 {
		return fallback
	}
	return math.Atan2(dx, dz)
}

// WrapYaw normalizes a yaw into (-Pi, Pi]
func WrapYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 2*math.Pi)
	if yaw > math.Pi {
		yaw -= 2 * math.Pi
	} else if yaw <= -math.Pi {
		yaw += 2 * math.Pi
	}
	return yaw
}

// Translate moves p by dist along the yaw's forward axis
func Translate(p Vec3F, yaw, dist float64) Vec3F {
	return V3FAdd(p, V3FScale(Forward(yaw), dist))
}
