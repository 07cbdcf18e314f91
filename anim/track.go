// Package anim turns an assembled pose sequence into a keyframe
// track for the target skeleton: resampling to the output frame rate,
// resolving root motion against the bind pose, correcting the root
// orientation and emitting one complete keyframe set per frame.
package anim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Frame is one output keyframe set. Rotations are ordered by the
// binding's emission layout (body joints, left hand, right hand); the
// root joint is slot 0 and additionally carries the translation.
type Frame struct {
	Number          int          `json:"number"`
	RootTranslation mgl64.Vec3   `json:"root_translation"`
	Rotations       []mgl64.Quat `json:"rotations"`
}

// Track is the finished clip handed to the exporter. JointNames and
// every frame's Rotations are parallel, so the track reads as a
// column-oriented table indexed by joint name.
type Track struct {
	FirstFrame int      `json:"first_frame"`
	FrameRate  int      `json:"frame_rate"`
	JointNames []string `json:"joint_names"`
	Frames     []Frame  `json:"frames"`
}

// Column returns one joint's rotation across all frames.
func (t *Track) Column(name string) ([]mgl64.Quat, error) {
	slot := -1
	for i, n := range t.JointNames {
		if n == name {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil, errors.Errorf("joint %q is not in the track", name)
	}

	col := make([]mgl64.Quat, len(t.Frames))
	for i := range t.Frames {
		col[i] = t.Frames[i].Rotations[slot]
	}
	return col, nil
}
