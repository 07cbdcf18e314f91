// Package skeleton describes the target rig: ordered joint name
// tables matching the SMPL-X joint layout and the bind-pose root
// position. The binding is read-only once built; all per-frame code
// addresses joints through slot indices resolved here, never by name.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

const (
	BodyJointCount = 22 // pelvis + 21 body joints
	HandJointCount = 15
)

// TotalJointCount is the full emission layout: body, then left hand,
// then right hand.
const TotalJointCount = BodyJointCount + 2*HandJointCount

var BodyJointNames = []string{
	"pelvis",
	"left_hip",
	"right_hip",
	"spine1",
	"left_knee",
	"right_knee",
	"spine2",
	"left_ankle",
	"right_ankle",
	"spine3",
	"left_foot",
	"right_foot",
	"neck",
	"left_collar",
	"right_collar",
	"head",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
}

var LeftHandJointNames = []string{
	"left_index1",
	"left_index2",
	"left_index3",
	"left_middle1",
	"left_middle2",
	"left_middle3",
	"left_pinky1",
	"left_pinky2",
	"left_pinky3",
	"left_ring1",
	"left_ring2",
	"left_ring3",
	"left_thumb1",
	"left_thumb2",
	"left_thumb3",
}

var RightHandJointNames = []string{
	"right_index1",
	"right_index2",
	"right_index3",
	"right_middle1",
	"right_middle2",
	"right_middle3",
	"right_pinky1",
	"right_pinky2",
	"right_pinky3",
	"right_ring1",
	"right_ring2",
	"right_ring3",
	"right_thumb1",
	"right_thumb2",
	"right_thumb3",
}

type Binding struct {
	BodyJoints      []string
	LeftHandJoints  []string
	RightHandJoints []string

	// Bind-pose position of the root joint relative to the
	// skeleton's local origin, in the skeleton's length unit.
	BindRoot mgl64.Vec3

	index map[string]int
}

// NewBinding validates joint counts and name uniqueness once, so a
// bad rig surfaces here instead of as a lookup miss in the frame loop.
func NewBinding(body, leftHand, rightHand []string, bindRoot mgl64.Vec3) (*Binding, error) {
	if len(body) != BodyJointCount {
		return nil, errors.Errorf("expected %d body joints, got %d", BodyJointCount, len(body))
	}
	if len(leftHand) != HandJointCount {
		return nil, errors.Errorf("expected %d left hand joints, got %d", HandJointCount, len(leftHand))
	}
	if len(rightHand) != HandJointCount {
		return nil, errors.Errorf("expected %d right hand joints, got %d", HandJointCount, len(rightHand))
	}

	b := &Binding{
		BodyJoints:      body,
		LeftHandJoints:  leftHand,
		RightHandJoints: rightHand,
		BindRoot:        bindRoot,
		index:           make(map[string]int, TotalJointCount),
	}
	for i, name := range b.JointNames() {
		if name == "" {
			return nil, errors.Errorf("empty joint name at slot %d", i)
		}
		if prev, ok := b.index[name]; ok {
			return nil, errors.Errorf("duplicate joint name %q at slots %d and %d", name, prev, i)
		}
		b.index[name] = i
	}
	return b, nil
}

// Default returns the standard SMPL-X binding.
func Default(bindRoot mgl64.Vec3) *Binding {
	b, err := NewBinding(BodyJointNames, LeftHandJointNames, RightHandJointNames, bindRoot)
	if err != nil {
		panic(err)
	}
	return b
}

// Root returns the root joint name (slot 0, the pelvis).
func (b *Binding) Root() string {
	return b.BodyJoints[0]
}

// JointNames returns all joint names in emission order.
func (b *Binding) JointNames() []string {
	names := make([]string, 0, TotalJointCount)
	names = append(names, b.BodyJoints...)
	names = append(names, b.LeftHandJoints...)
	return append(names, b.RightHandJoints...)
}

// Index resolves a joint name to its emission slot.
func (b *Binding) Index(name string) (int, bool) {
	i, ok := b.index[name]
	return i, ok
}
