// Package npz loads SMPL-X pose records from .npz files, one file
// per source time sample. An .npz is a plain zip of NumPy .npy
// arrays; the five arrays this loader expects are the ones emitted by
// the upstream pose estimator: global_orient (1×3), body_pose (21×3),
// left_hand_pose (15×3), right_hand_pose (15×3) and transl (3).
// Joint counts are policed later by the pose assembler; this loader
// only guarantees well-formed 3-component vectors.
package npz

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio"

	"github.com/posekit/smplx2anim/pose"
)

var recordKeys = []string{
	"global_orient",
	"body_pose",
	"left_hand_pose",
	"right_hand_pose",
	"transl",
}

func readArray(f io.Reader) ([]float64, error) {
	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, err
	}

	switch t := r.Header.Descr.Type; {
	case strings.Contains(t, "f4"):
		var data []float32
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case strings.Contains(t, "f8"):
		var data []float64
		if err := r.Read(&data); err != nil {
			return nil, err
		}
		return data, nil
	default:
		return nil, errors.Errorf("unsupported dtype %q", r.Header.Descr.Type)
	}
}

func vectors(data []float64) ([]mgl64.Vec3, error) {
	if len(data)%3 != 0 {
		return nil, errors.Errorf("element count %d is not a multiple of 3", len(data))
	}
	vecs := make([]mgl64.Vec3, len(data)/3)
	for i := range vecs {
		vecs[i] = mgl64.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
	}
	return vecs, nil
}

func single(vecs []mgl64.Vec3, key string) (mgl64.Vec3, error) {
	if len(vecs) != 1 {
		return mgl64.Vec3{}, errors.Errorf("%s has %d vectors, expected 1", key, len(vecs))
	}
	return vecs[0], nil
}

// LoadFile decodes one .npz pose record.
func LoadFile(path string) (*pose.Record, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", path)
	}
	defer zr.Close()

	arrays := make(map[string][]mgl64.Vec3, len(recordKeys))
	for _, key := range recordKeys {
		data, err := loadEntry(&zr.Reader, key)
		if err != nil {
			return nil, errors.Wrapf(err, "%q array %q", path, key)
		}
		vecs, err := vectors(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%q array %q", path, key)
		}
		arrays[key] = vecs
	}

	rec := &pose.Record{
		BodyPose:  arrays["body_pose"],
		LeftHand:  arrays["left_hand_pose"],
		RightHand: arrays["right_hand_pose"],
	}
	if rec.GlobalOrient, err = single(arrays["global_orient"], "global_orient"); err != nil {
		return nil, errors.Wrapf(err, "%q", path)
	}
	if rec.Transl, err = single(arrays["transl"], "transl"); err != nil {
		return nil, errors.Wrapf(err, "%q", path)
	}
	return rec, nil
}

func loadEntry(zr *zip.Reader, key string) ([]float64, error) {
	for _, f := range zr.File {
		if f.Name != key && f.Name != key+".npy" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return readArray(rc)
	}
	return nil, errors.New("missing array")
}

// LoadDirectory loads every .npz in dir, sorted by file name, which
// is the source time order of the upstream estimator's output.
func LoadDirectory(dir string) ([]*pose.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %q", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".npz") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.Errorf("no .npz files in %q", dir)
	}
	sort.Strings(names)

	recs := make([]*pose.Record, 0, len(names))
	for _, name := range names {
		rec, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
