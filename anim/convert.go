package anim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/posekit/smplx2anim/config"
	"github.com/posekit/smplx2anim/pose"
	"github.com/posekit/smplx2anim/skeleton"
)

// Convert walks the pose sequence at the resampling stride and emits
// one complete keyframe set per selected sample. Output frame numbers
// are consecutive and 1-based.
func Convert(seq *pose.Sequence, binding *skeleton.Binding, set config.Settings) (*Track, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if seq == nil || seq.Len() == 0 {
		return nil, errors.New("empty pose sequence")
	}

	stride := Stride(set.SourceRate, set.TargetRate)
	indices := ResampleIndices(seq.Len(), stride)

	track := &Track{
		FirstFrame: 1,
		FrameRate:  set.EffectiveTargetRate(),
		JointNames: binding.JointNames(),
		Frames:     make([]Frame, 0, len(indices)),
	}

	rm := newRootMotion(binding.BindRoot, set.CenterOnOrigin)
	for frame, src := range indices {
		track.Frames = append(track.Frames, emitFrame(track.FirstFrame+frame, &seq.Samples[src], rm))
	}
	return track, nil
}

func emitFrame(number int, s *pose.Sample, rm *rootMotion) Frame {
	rotations := make([]mgl64.Quat, 0, skeleton.TotalJointCount)
	rotations = append(rotations, CorrectRootRotation(s.Body[0]))
	rotations = append(rotations, s.Body[1:]...)
	rotations = append(rotations, s.LeftHand...)
	rotations = append(rotations, s.RightHand...)

	return Frame{
		Number:          number,
		RootTranslation: rm.resolve(s.Transl),
		Rotations:       rotations,
	}
}
