package attr

import (
	"errors"
	"testing"
)

func listOfUints(t *testing.T, xs ...uint64) *Value {
	t.Helper()
	v := &Value{}
	v.MakeList(0)
	for _, x := range xs {
		if err := v.Append(Uint(x)); err != nil {
			t.Fatal(err)
		}
	}
	return v
}

func uintsOf(t *testing.T, v *Value) []uint64 {
	t.Helper()
	out := make([]uint64, v.Size())
	for i := range out {
		e, err := v.At(i)
		if err != nil {
			t.Fatal(err)
		}
		u, err := e.AsUint()
		if err != nil {
			t.Fatal(err)
		}
		out[i] = u
	}
	return out
}

func equalUints(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name string
		init []uint64
		idx  int
		item uint64
		want []uint64
	}{
		{"head", []uint64{1, 2, 3}, 0, 9, []uint64{9, 1, 2, 3}},
		{"middle", []uint64{1, 2, 3}, 1, 9, []uint64{1, 9, 2, 3}},
		{"tail", []uint64{1, 2, 3}, 3, 9, []uint64{1, 2, 3, 9}},
		{"empty", nil, 0, 9, []uint64{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := listOfUints(t, tt.init...)
			if err := v.InsertAt(tt.idx, Uint(tt.item)); err != nil {
				t.Fatal(err)
			}
			if got := uintsOf(t, v); !equalUints(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertAtOutOfRange(t *testing.T) {
	v := listOfUints(t, 1, 2)
	if err := v.InsertAt(3, Uint(9)); !errors.Is(err, ErrIndexRange) {
		t.Errorf("InsertAt(3): %v, want ErrIndexRange", err)
	}
	if v.Size() != 2 {
		t.Errorf("failed insert mutated the list: size %d", v.Size())
	}
	if err := v.InsertAt(-1, Uint(9)); !errors.Is(err, ErrIndexRange) {
		t.Errorf("InsertAt(-1): %v, want ErrIndexRange", err)
	}
}

func TestInsertDeepCopies(t *testing.T) {
	item := List(Uint(1))
	v := &Value{}
	v.MakeList(0)
	if err := v.InsertAt(0, item); err != nil {
		t.Fatal(err)
	}
	if err := item.Append(Uint(2)); err != nil {
		t.Fatal(err)
	}
	e, _ := v.At(0)
	if e.Size() != 1 {
		t.Errorf("inserted element aliases the source: size %d", e.Size())
	}
}

// Removal is swap-remove: the last element fills the hole. The order is
// intentionally not preserved.
func TestRemoveAtSwapSemantics(t *testing.T) {
	tests := []struct {
		name string
		init []uint64
		idx  int
		want []uint64
	}{
		{"head_gets_last", []uint64{10, 20, 30}, 0, []uint64{30, 20}},
		{"middle_gets_last", []uint64{10, 20, 30, 40}, 1, []uint64{10, 40, 30}},
		{"last", []uint64{10, 20, 30}, 2, []uint64{10, 20}},
		{"single", []uint64{10}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := listOfUints(t, tt.init...)
			if err := v.RemoveAt(tt.idx); err != nil {
				t.Fatal(err)
			}
			if got := uintsOf(t, v); !equalUints(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveAtOutOfRange(t *testing.T) {
	v := listOfUints(t, 1)
	if err := v.RemoveAt(1); !errors.Is(err, ErrIndexRange) {
		t.Errorf("RemoveAt(1): %v, want ErrIndexRange", err)
	}
	if err := v.RemoveAt(-1); !errors.Is(err, ErrIndexRange) {
		t.Errorf("RemoveAt(-1): %v, want ErrIndexRange", err)
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name       string
		init       []uint64
		start, end int
		want       []uint64
	}{
		{"middle", []uint64{0, 1, 2, 3, 4, 5, 6}, 2, 5, []uint64{0, 1, 5, 6}},
		{"head", []uint64{0, 1, 2, 3}, 0, 2, []uint64{2, 3}},
		{"tail", []uint64{0, 1, 2, 3}, 2, 4, []uint64{0, 1}},
		{"all", []uint64{0, 1, 2}, 0, 3, nil},
		{"empty_range", []uint64{0, 1, 2}, 1, 1, []uint64{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := listOfUints(t, tt.init...)
			if err := v.Trim(tt.start, tt.end); err != nil {
				t.Fatal(err)
			}
			if want := len(tt.init) - (tt.end - tt.start); v.Size() != want {
				t.Errorf("size %d, want %d", v.Size(), want)
			}
			if got := uintsOf(t, v); !equalUints(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimOutOfRange(t *testing.T) {
	v := listOfUints(t, 1, 2, 3)
	for _, r := range [][2]int{{-1, 2}, {2, 1}, {1, 4}} {
		if err := v.Trim(r[0], r[1]); !errors.Is(err, ErrIndexRange) {
			t.Errorf("Trim(%d,%d): %v, want ErrIndexRange", r[0], r[1], err)
		}
	}
}

func TestTrimOwnedPayloads(t *testing.T) {
	v := &Value{}
	v.MakeList(0)
	for i := 0; i < 5; i++ {
		if err := v.Append(List(Uint(uint64(i)))); err != nil {
			t.Fatal(err)
		}
	}
	if err := v.Trim(1, 4); err != nil {
		t.Fatal(err)
	}
	if v.Size() != 2 {
		t.Fatalf("size %d", v.Size())
	}
	first, _ := v.At(0)
	second, _ := v.At(1)
	f0, _ := first.At(0)
	s0, _ := second.At(0)
	u0, _ := f0.AsUint()
	u1, _ := s0.AsUint()
	if u0 != 0 || u1 != 4 {
		t.Errorf("survivors [%d %d], want [0 4]", u0, u1)
	}
}

func TestSwap(t *testing.T) {
	v := List(Str("a"), List(Uint(1), Uint(2)), Uint(3))
	if err := v.Swap(0, 1); err != nil {
		t.Fatal(err)
	}
	first, _ := v.At(0)
	second, _ := v.At(1)
	if !first.IsList() || first.Size() != 2 {
		t.Errorf("element 0 after swap: %v", first)
	}
	if !second.EqualString("a") {
		t.Errorf("element 1 after swap: %v", second)
	}

	if err := v.Swap(0, 3); !errors.Is(err, ErrIndexRange) {
		t.Errorf("Swap out of range: %v", err)
	}
}

func TestListOpsOnNonList(t *testing.T) {
	d := Dict()
	if err := d.Append(Uint(1)); !errors.Is(err, ErrNotList) {
		t.Errorf("Append on dict: %v", err)
	}
	if err := d.InsertAt(0, Uint(1)); !errors.Is(err, ErrNotList) {
		t.Errorf("InsertAt on dict: %v", err)
	}
	if err := d.RemoveAt(0); !errors.Is(err, ErrNotList) {
		t.Errorf("RemoveAt on dict: %v", err)
	}
	if err := d.Trim(0, 0); !errors.Is(err, ErrNotList) {
		t.Errorf("Trim on dict: %v", err)
	}
	if err := d.Swap(0, 0); !errors.Is(err, ErrNotList) {
		t.Errorf("Swap on dict: %v", err)
	}
}
