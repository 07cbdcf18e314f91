// Package rotation converts axis-angle (Rodrigues) rotation vectors
// into unit quaternions, the canonical keyframe rotation format of
// this converter.
package rotation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Below this angle the rotation axis is numerically meaningless and
// the conversion short-circuits to the identity quaternion.
const identityAngleEps = 1e-12

// NumericError reports a rotation vector with non-finite components.
type NumericError struct {
	Index int
	Vec   mgl64.Vec3
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("non-finite rotation vector %v at index %d", e.Vec, e.Index)
}

func finite(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

// rodrigues builds the rotation matrix
// R = cos θ · I + (1−cos θ) · r̂ r̂ᵗ + sin θ · K
// for a unit axis and angle in radians.
func rodrigues(axis mgl64.Vec3, theta float64) mgl64.Mat3 {
	cost := math.Cos(theta)
	sint := math.Sin(theta)

	x, y, z := axis.X(), axis.Y(), axis.Z()
	// cross-product matrix of the axis, column-major
	k := mgl64.Mat3{
		0, z, -y,
		-z, 0, x,
		y, -x, 0,
	}

	m := mgl64.Ident3().Mul(cost)
	m = m.Add(axis.OuterProd3(axis).Mul(1 - cost))
	return m.Add(k.Mul(sint))
}

// FromAxisAngle converts a rotation vector whose direction is the
// rotation axis and whose magnitude is the angle in radians. A zero
// (or numerically zero) vector maps to the identity quaternion
// explicitly instead of relying on the matrix formula to cancel.
func FromAxisAngle(r mgl64.Vec3) (mgl64.Quat, error) {
	if !finite(r) {
		return mgl64.QuatIdent(), &NumericError{Vec: r}
	}

	theta := r.Len()
	if theta < identityAngleEps {
		return mgl64.QuatIdent(), nil
	}

	m := rodrigues(r.Mul(1/theta), theta)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize(), nil
}

// FromAxisAngleBatch converts rotation vectors independently,
// preserving order. The first invalid vector aborts the batch.
func FromAxisAngleBatch(rs []mgl64.Vec3) ([]mgl64.Quat, error) {
	qs := make([]mgl64.Quat, len(rs))
	for i, r := range rs {
		q, err := FromAxisAngle(r)
		if err != nil {
			var nerr *NumericError
			if errors.As(err, &nerr) {
				nerr.Index = i
			}
			return nil, err
		}
		qs[i] = q
	}
	return qs, nil
}
