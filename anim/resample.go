package anim

// Stride is the integer step between consecutive source samples
// selected for output. The target rate is clamped to the source rate
// first, so the stride is always at least 1 and the converter never
// upsamples.
func Stride(sourceRate, targetRate int) int {
	if targetRate > sourceRate {
		targetRate = sourceRate
	}
	s := sourceRate / targetRate
	if s < 1 {
		s = 1
	}
	return s
}

// ResampleIndices selects the source sample indices to keyframe:
// 0, stride, 2*stride, ... below n. Every downstream stage consumes
// this index list; nothing re-derives it.
func ResampleIndices(n, stride int) []int {
	if n <= 0 {
		return nil
	}
	idx := make([]int, 0, (n-1)/stride+1)
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	return idx
}
