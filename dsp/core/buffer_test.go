package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 16)

	got := EnsureLen(buf, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if &got[0] != &buf[0] {
		t.Error("capacity should have been reused")
	}

	got = EnsureLen(buf, 32)
	if len(got) != 32 {
		t.Fatalf("len = %d, want 32", len(got))
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestReverse(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5}
	Reverse(buf)
	want := []float64{5, 4, 3, 2, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}

	single := []float64{7}
	Reverse(single)
	if single[0] != 7 {
		t.Error("single-element reverse changed the value")
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 3)
	n := CopyInto(dst, []float64{1, 2})
	if n != 2 {
		t.Fatalf("copied %d, want 2", n)
	}
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 0 {
		t.Errorf("dst = %v", dst)
	}
}
