// Package gltfexport serializes a keyframe track into a glTF 2.0
// document: one node per joint under an armature root, one animation
// with a rotation channel per joint and a translation channel for the
// root joint.
package gltfexport

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/posekit/smplx2anim/anim"
	"github.com/posekit/smplx2anim/utils"
)

const RootNodeName = "SMPLX-neutral"

func appendFloats(doc *gltf.Document, vals []float32) uint32 {
	buf := doc.Buffers[0]
	offset := uint32(len(buf.Data))
	for _, v := range vals {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Data = append(buf.Data, b[:]...)
	}
	buf.ByteLength = uint32(len(buf.Data))

	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: uint32(len(vals) * 4),
	})
	return uint32(len(doc.BufferViews) - 1)
}

func writeAccessor(doc *gltf.Document, vals []float32, count uint32, atype gltf.AccessorType, min, max []float32) uint32 {
	view := appendFloats(doc, vals)
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(view),
		ComponentType: gltf.ComponentFloat,
		Count:         count,
		Type:          atype,
		Min:           min,
		Max:           max,
	})
	return uint32(len(doc.Accessors) - 1)
}

func quatFloats(q [4]float32) []float32 { return q[:] }

// BuildDocument lays out the skeleton nodes and the animation for one
// track.
func BuildDocument(track *anim.Track) (*gltf.Document, error) {
	if len(track.Frames) == 0 {
		return nil, errors.New("track has no frames")
	}
	if track.FrameRate <= 0 {
		return nil, errors.Errorf("track frame rate %d", track.FrameRate)
	}

	doc := gltf.NewDocument()
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{})

	first := &track.Frames[0]

	armature := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:     RootNodeName,
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, armature)

	jointNodes := make([]uint32, len(track.JointNames))
	for slot, name := range track.JointNames {
		node := &gltf.Node{
			Name:     name,
			Rotation: rotationOf(first, slot),
			Scale:    [3]float32{1, 1, 1},
		}
		if slot == 0 {
			node.Translation = vec3Of(first.RootTranslation)
		}
		jointNodes[slot] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, node)
		doc.Nodes[armature].Children = append(doc.Nodes[armature].Children, jointNodes[slot])
	}

	times := make([]float64, len(track.Frames))
	for i, f := range track.Frames {
		times[i] = float64(f.Number-track.FirstFrame) / float64(track.FrameRate)
	}
	timesAccessor := writeAccessor(doc, utils.FloatArray64to32(times),
		uint32(len(times)), gltf.AccessorScalar,
		[]float32{float32(times[0])}, []float32{float32(times[len(times)-1])})

	animation := &gltf.Animation{Name: "pose"}
	addChannel := func(node uint32, path gltf.TRSProperty, output uint32) {
		animation.Samplers = append(animation.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(timesAccessor),
			Interpolation: gltf.InterpolationLinear,
			Output:        gltf.Index(output),
		})
		animation.Channels = append(animation.Channels, &gltf.Channel{
			Sampler: gltf.Index(uint32(len(animation.Samplers) - 1)),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(node),
				Path: path,
			},
		})
	}

	// root translation channel
	transl := make([]float32, 0, len(track.Frames)*3)
	for i := range track.Frames {
		v := vec3Of(track.Frames[i].RootTranslation)
		transl = append(transl, v[:]...)
	}
	addChannel(jointNodes[0], gltf.TRSTranslation,
		writeAccessor(doc, transl, uint32(len(track.Frames)), gltf.AccessorVec3, nil, nil))

	// one rotation channel per joint
	for slot := range track.JointNames {
		rots := make([]float32, 0, len(track.Frames)*4)
		for i := range track.Frames {
			rots = append(rots, quatFloats(rotationOf(&track.Frames[i], slot))...)
		}
		addChannel(jointNodes[slot], gltf.TRSRotation,
			writeAccessor(doc, rots, uint32(len(track.Frames)), gltf.AccessorVec4, nil, nil))
	}

	doc.Animations = append(doc.Animations, animation)
	return doc, nil
}

// rotationOf extracts one joint's rotation in glTF (x,y,z,w) order.
func rotationOf(f *anim.Frame, slot int) [4]float32 {
	q := f.Rotations[slot]
	return [4]float32{float32(q.X()), float32(q.Y()), float32(q.Z()), float32(q.W)}
}

func vec3Of(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// ExportBinary encodes the document as .glb.
func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

// SaveBinary converts and writes a track in one call.
func SaveBinary(path string, track *anim.Track) error {
	doc, err := BuildDocument(track)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	defer f.Close()

	if err := ExportBinary(f, doc); err != nil {
		return errors.Wrapf(err, "failed to encode %q", path)
	}
	return nil
}
