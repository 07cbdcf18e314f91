package anim

import "testing"

var strideTests = []struct {
	sourceRate int
	targetRate int
	want       int
}{
	{30, 30, 1},
	{30, 60, 1}, // never upsample
	{30, 10, 3},
	{60, 25, 2}, // integer stride, rounds down
	{24, 30, 1},
}

func TestStride(t *testing.T) {
	for _, test := range strideTests {
		if got := Stride(test.sourceRate, test.targetRate); got != test.want {
			t.Errorf("Stride(%d,%d)=%d; expected %d",
				test.sourceRate, test.targetRate, got, test.want)
		}
	}
}

func TestResampleIndices(t *testing.T) {
	idx := ResampleIndices(100, 3)
	if len(idx) != 34 {
		t.Fatalf("frame count %d, expected 34", len(idx))
	}
	if idx[0] != 0 || idx[1] != 3 || idx[33] != 99 {
		t.Errorf("indices %d,%d,...,%d; expected 0,3,...,99", idx[0], idx[1], idx[33])
	}

	idx = ResampleIndices(100, 1)
	if len(idx) != 100 {
		t.Errorf("stride 1 frame count %d, expected 100", len(idx))
	}

	if ResampleIndices(0, 1) != nil {
		t.Error("expected nil for empty input")
	}
}
