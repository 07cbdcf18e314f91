package anim

import "github.com/go-gl/mathgl/mgl64"

// rootOrientationFix rotates the root joint 180° about the
// skeleton's X axis so the avatar stands upright and faces the rig's
// forward axis. Applied to the root only, every frame.
var rootOrientationFix = mgl64.QuatRotate(mgl64.DegToRad(-180), mgl64.Vec3{1, 0, 0})

// CorrectRootRotation pre-multiplies the assembled root quaternion by
// the fixed corrective rotation.
func CorrectRootRotation(q mgl64.Quat) mgl64.Quat {
	return rootOrientationFix.Mul(q)
}
