// Package pose assembles raw per-frame SMPL-X pose records into
// quaternion samples.
//
// Hand rotation vectors are right-multiplied by diag(1,1,-1) before
// conversion to reconcile the hand-pose axis convention with the
// target rig. The same mirror is applied to both hands, matching the
// reference pipeline; a per-side sign flip would be the usual
// skeletal mirroring convention, so confirm against reference output
// before changing either side.
package pose

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/posekit/smplx2anim/rotation"
	"github.com/posekit/smplx2anim/skeleton"
)

// Record is one raw source time sample as decoded by the loader:
// axis-angle vectors in radians plus the root translation in model
// units.
type Record struct {
	GlobalOrient mgl64.Vec3
	BodyPose     []mgl64.Vec3 // 21 joints
	LeftHand     []mgl64.Vec3 // 15 joints
	RightHand    []mgl64.Vec3 // 15 joints
	Transl       mgl64.Vec3
}

// Sample is one assembled time sample. Body slot 0 carries the global
// orientation (the root joint); slots map positionally onto the
// skeleton binding's joint name tables.
type Sample struct {
	Body      []mgl64.Quat // 22
	LeftHand  []mgl64.Quat // 15
	RightHand []mgl64.Quat // 15
	Transl    mgl64.Vec3
}

// Sequence is a time-indexed list of structurally homogeneous
// samples. Built once by AssembleSequence and never mutated.
type Sequence struct {
	Samples []Sample
}

func (s *Sequence) Len() int { return len(s.Samples) }

// ShapeMismatchError reports a record section whose joint count
// disagrees with the fixed SMPL-X layout.
type ShapeMismatchError struct {
	Section string
	Got     int
	Want    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s has %d joints, expected %d", e.Section, e.Got, e.Want)
}

var handAxisFix = mgl64.Diag3(mgl64.Vec3{1, 1, -1})

func (r *Record) validate() error {
	if len(r.BodyPose) != skeleton.BodyJointCount-1 {
		return &ShapeMismatchError{Section: "body_pose", Got: len(r.BodyPose), Want: skeleton.BodyJointCount - 1}
	}
	if len(r.LeftHand) != skeleton.HandJointCount {
		return &ShapeMismatchError{Section: "left_hand_pose", Got: len(r.LeftHand), Want: skeleton.HandJointCount}
	}
	if len(r.RightHand) != skeleton.HandJointCount {
		return &ShapeMismatchError{Section: "right_hand_pose", Got: len(r.RightHand), Want: skeleton.HandJointCount}
	}
	return nil
}

func convertHand(vecs []mgl64.Vec3) ([]mgl64.Quat, error) {
	fixed := make([]mgl64.Vec3, len(vecs))
	for i, v := range vecs {
		fixed[i] = handAxisFix.Mul3x1(v)
	}
	return rotation.FromAxisAngleBatch(fixed)
}

// AssembleSample converts one raw record into a Sample. Shapes are
// checked before any per-joint math runs.
func AssembleSample(rec *Record) (*Sample, error) {
	if err := rec.validate(); err != nil {
		return nil, err
	}

	bodyVecs := make([]mgl64.Vec3, 0, skeleton.BodyJointCount)
	bodyVecs = append(bodyVecs, rec.GlobalOrient)
	bodyVecs = append(bodyVecs, rec.BodyPose...)

	body, err := rotation.FromAxisAngleBatch(bodyVecs)
	if err != nil {
		return nil, errors.Wrap(err, "body pose")
	}
	left, err := convertHand(rec.LeftHand)
	if err != nil {
		return nil, errors.Wrap(err, "left hand pose")
	}
	right, err := convertHand(rec.RightHand)
	if err != nil {
		return nil, errors.Wrap(err, "right hand pose")
	}

	return &Sample{
		Body:      body,
		LeftHand:  left,
		RightHand: right,
		Transl:    rec.Transl,
	}, nil
}

// AssembleSequence converts records in order. Any invalid record
// aborts the whole sequence: downstream frame indexing assumes a
// uniform shape, so a heterogeneous sequence is not partially
// processable.
func AssembleSequence(recs []*Record) (*Sequence, error) {
	if len(recs) == 0 {
		return nil, errors.New("empty pose sequence")
	}

	seq := &Sequence{Samples: make([]Sample, 0, len(recs))}
	for i, rec := range recs {
		s, err := AssembleSample(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		seq.Samples = append(seq.Samples, *s)
	}
	return seq, nil
}
