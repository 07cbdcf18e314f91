package pose

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/posekit/smplx2anim/rotation"
	"github.com/posekit/smplx2anim/skeleton"
)

func validRecord() *Record {
	return &Record{
		GlobalOrient: mgl64.Vec3{0, 0, math.Pi / 2},
		BodyPose:     make([]mgl64.Vec3, skeleton.BodyJointCount-1),
		LeftHand:     make([]mgl64.Vec3, skeleton.HandJointCount),
		RightHand:    make([]mgl64.Vec3, skeleton.HandJointCount),
		Transl:       mgl64.Vec3{1, 2, 3},
	}
}

func TestAssembleSample(t *testing.T) {
	rec := validRecord()
	rec.BodyPose[4] = mgl64.Vec3{0.2, 0, 0}

	s, err := AssembleSample(rec)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Body) != skeleton.BodyJointCount ||
		len(s.LeftHand) != skeleton.HandJointCount ||
		len(s.RightHand) != skeleton.HandJointCount {
		t.Fatalf("sample counts %d/%d/%d", len(s.Body), len(s.LeftHand), len(s.RightHand))
	}

	// slot 0 is the global orientation, slot i+1 is body_pose[i]
	want, _ := rotation.FromAxisAngle(rec.GlobalOrient)
	if s.Body[0] != want {
		t.Errorf("body[0]=%v, expected global orient %v", s.Body[0], want)
	}
	want, _ = rotation.FromAxisAngle(rec.BodyPose[4])
	if s.Body[5] != want {
		t.Errorf("body[5]=%v, expected %v", s.Body[5], want)
	}
	if s.Transl != rec.Transl {
		t.Errorf("transl %v, expected %v", s.Transl, rec.Transl)
	}
}

func TestHandAxisFix(t *testing.T) {
	rec := validRecord()
	rec.LeftHand[0] = mgl64.Vec3{0.1, -0.2, 0.3}
	rec.RightHand[0] = mgl64.Vec3{0.1, -0.2, 0.3}

	s, err := AssembleSample(rec)
	if err != nil {
		t.Fatal(err)
	}

	// hand vectors get their Z component mirrored before conversion
	want, _ := rotation.FromAxisAngle(mgl64.Vec3{0.1, -0.2, -0.3})
	if s.LeftHand[0] != want {
		t.Errorf("left hand[0]=%v, expected mirrored %v", s.LeftHand[0], want)
	}
	// same fix on both sides
	if s.RightHand[0] != s.LeftHand[0] {
		t.Errorf("right hand[0]=%v differs from left %v for identical input",
			s.RightHand[0], s.LeftHand[0])
	}
}

func TestShapeRejection(t *testing.T) {
	tests := []struct {
		section string
		mutate  func(*Record)
	}{
		{"body_pose", func(r *Record) { r.BodyPose = r.BodyPose[:20] }},
		{"left_hand_pose", func(r *Record) { r.LeftHand = append(r.LeftHand, mgl64.Vec3{}) }},
		{"right_hand_pose", func(r *Record) { r.RightHand = r.RightHand[:3] }},
	}
	for _, test := range tests {
		rec := validRecord()
		test.mutate(rec)
		_, err := AssembleSample(rec)
		var serr *ShapeMismatchError
		if !errors.As(err, &serr) {
			t.Errorf("%s: expected ShapeMismatchError, got %v", test.section, err)
			continue
		}
		if serr.Section != test.section {
			t.Errorf("error section %q, expected %q", serr.Section, test.section)
		}
	}
}

func TestSequenceAbortsOnBadRecord(t *testing.T) {
	bad := validRecord()
	bad.BodyPose = bad.BodyPose[:20]

	_, err := AssembleSequence([]*Record{validRecord(), bad, validRecord()})
	var serr *ShapeMismatchError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestSequenceRejectsEmpty(t *testing.T) {
	if _, err := AssembleSequence(nil); err == nil {
		t.Error("expected error for empty sequence")
	}
}

func TestSequenceNumericError(t *testing.T) {
	bad := validRecord()
	bad.BodyPose[0] = mgl64.Vec3{math.NaN(), 0, 0}

	_, err := AssembleSequence([]*Record{bad})
	var nerr *rotation.NumericError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NumericError, got %v", err)
	}
}
