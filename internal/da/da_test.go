package da

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendDoublesCapacity(t *testing.T) {
	var s []int
	s = Append(s, 1)
	if cap(s) != InitCap {
		t.Fatalf("cap after first Append = %d, want %d", cap(s), InitCap)
	}
	for i := 2; i <= InitCap+1; i++ {
		s = Append(s, i)
	}
	if cap(s) != 2*InitCap {
		t.Errorf("cap after %d appends = %d, want %d", InitCap+1, cap(s), 2*InitCap)
	}
	if len(s) != InitCap+1 || s[0] != 1 || s[InitCap] != InitCap+1 {
		t.Errorf("contents = %v", s)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		i    int
		v    int
		want []int
	}{
		{"front", []int{1, 2, 3}, 0, 9, []int{9, 1, 2, 3}},
		{"middle", []int{1, 2, 3}, 1, 9, []int{1, 9, 2, 3}},
		{"end appends", []int{1, 2, 3}, 3, 9, []int{1, 2, 3, 9}},
		{"empty", nil, 0, 9, []int{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insert(Clone(tt.in), tt.i, tt.v)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestInsertOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Insert past the end did not panic")
		}
	}()
	Insert([]int{1}, 3, 0)
}

func TestDelete(t *testing.T) {
	got := Delete([]int{1, 2, 3, 4}, 1)
	if d := cmp.Diff([]int{1, 3, 4}, got); d != "" {
		t.Error(d)
	}
	got = Delete(got, 2)
	if d := cmp.Diff([]int{1, 3}, got); d != "" {
		t.Error(d)
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]string{"a", "b"}, []string{"c"})
	if d := cmp.Diff([]string{"a", "b", "c"}, got); d != "" {
		t.Error(d)
	}
}

func TestCopyIntoReusesBackingArray(t *testing.T) {
	dst := make([]int, 0, 8)
	dst = append(dst, 7, 7, 7, 7, 7)
	first := &dst[0]

	dst = CopyInto(dst, []int{1, 2, 3})
	if d := cmp.Diff([]int{1, 2, 3}, dst); d != "" {
		t.Error(d)
	}
	if &dst[0] != first {
		t.Error("CopyInto reallocated although capacity sufficed")
	}
}

func TestCopyIntoGrows(t *testing.T) {
	t.Run("doubles", func(t *testing.T) {
		dst := CopyInto(make([]int, 0, 4), []int{1, 2, 3, 4, 5})
		if cap(dst) != 8 {
			t.Errorf("cap = %d, want 8", cap(dst))
		}
	})
	t.Run("takes source size when doubling is short", func(t *testing.T) {
		src := make([]int, 50)
		dst := CopyInto(make([]int, 0, 4), src)
		if cap(dst) != 50 {
			t.Errorf("cap = %d, want 50", cap(dst))
		}
	})
}

func TestCloneIsIndependent(t *testing.T) {
	src := []int{1, 2, 3}
	c := Clone(src)
	c[0] = 99
	if src[0] != 1 {
		t.Error("Clone aliases its source")
	}
	if Clone[int](nil) != nil {
		t.Error("Clone(nil) != nil")
	}
}

func TestResizeKeepsSlotsPastLength(t *testing.T) {
	s := []int{1, 2, 3, 4}
	s = Resize(s, 1)
	s = Resize(s, 3)
	if d := cmp.Diff([]int{1, 2, 3}, s); d != "" {
		t.Error(d)
	}

	grown := Resize(s, 6)
	if len(grown) != 6 || grown[3] != 4 {
		t.Errorf("Resize grow = %v, want old storage carried over", grown)
	}
}
