package anim

import "github.com/go-gl/mathgl/mgl64"

// rootMotion resolves the root joint's per-frame local translation.
// When centering is on, the horizontal offset is captured from the
// first resolved frame and subtracted from every frame, that first
// one included. The vertical component is locked to zero before the
// bind-pose subtraction, so source vertical root motion is not
// transmitted (reference pipeline behavior).
type rootMotion struct {
	bind     mgl64.Vec3
	center   bool
	offset   mgl64.Vec3
	captured bool
}

func newRootMotion(bind mgl64.Vec3, center bool) *rootMotion {
	return &rootMotion{bind: bind, center: center}
}

func (rm *rootMotion) resolve(t mgl64.Vec3) mgl64.Vec3 {
	if rm.center && !rm.captured {
		rm.offset = mgl64.Vec3{t.X(), t.Y(), 0}
		rm.captured = true
	}
	return mgl64.Vec3{t.X() - rm.offset.X(), t.Y() - rm.offset.Y(), 0}.Sub(rm.bind)
}
