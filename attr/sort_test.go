package attr

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSortUints(t *testing.T) {
	v := listOfUints(t, 3, 1, 2)
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	if got := uintsOf(t, v); !equalUints(got, []uint64{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestSortUintsLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := &Value{}
	v.MakeList(0)
	for i := 0; i < 300; i++ {
		if err := v.Append(Uint(uint64(rng.Intn(1000)))); err != nil {
			t.Fatal(err)
		}
	}
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	got := uintsOf(t, v)
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("out of order at %d: %d > %d", i, got[i-1], got[i])
		}
	}
}

func TestSortInts(t *testing.T) {
	v := List(Int(5), Int(-3), Int(0), Int(-70), Int(12))
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	want := []int64{-70, -3, 0, 5, 12}
	for i, w := range want {
		e, _ := v.At(i)
		if got, _ := e.AsInt(); got != w {
			t.Errorf("element %d = %d, want %d", i, got, w)
		}
	}
}

func TestSortStrings(t *testing.T) {
	v := List(Str("uart1"), Str("gpio0"), Str("uart0"), Str("dsu0"))
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	want := []string{"dsu0", "gpio0", "uart0", "uart1"}
	for i, w := range want {
		e, _ := v.At(i)
		if !e.EqualString(w) {
			t.Errorf("element %d = %v, want %q", i, e, w)
		}
	}
}

func TestSortNestedListsByField(t *testing.T) {
	row := func(name string, irq uint64) *Value {
		return List(Str(name), Uint(irq))
	}
	v := List(row("uart0", 3), row("gpio0", 1), row("dsu0", 2))

	// Key index 1: the irq column.
	if err := v.Sort(1); err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"gpio0", "dsu0", "uart0"}
	for i, w := range wantNames {
		e, _ := v.At(i)
		name, _ := e.At(0)
		if !name.EqualString(w) {
			t.Errorf("row %d = %v, want %q", i, name, w)
		}
	}

	// Key index 0: the name column.
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	first, _ := v.At(0)
	name, _ := first.At(0)
	if !name.EqualString("dsu0") {
		t.Errorf("first row by name: %v", name)
	}
}

func TestSortNestedDictsByField(t *testing.T) {
	row := func(k uint64) *Value {
		d := Dict()
		d.Set("k", Uint(k))
		return d
	}
	v := List(row(3), row(1), row(2))
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	want := []uint64{1, 2, 3}
	for i, w := range want {
		e, _ := v.At(i)
		kv, _ := e.Get("k")
		if u, _ := kv.AsUint(); u != w {
			t.Errorf("row %d key = %d, want %d", i, u, w)
		}
	}
}

func TestSortUnsortableKind(t *testing.T) {
	v := List(Uint(3), Bool(true), Uint(1))
	err := v.Sort(0)
	if !errors.Is(err, ErrUnsortable) {
		t.Fatalf("sort with bool element: %v, want ErrUnsortable", err)
	}
}

func TestSortNonList(t *testing.T) {
	if err := Dict().Sort(0); !errors.Is(err, ErrNotList) {
		t.Errorf("sort on dict: %v, want ErrNotList", err)
	}
	if err := Uint(1).Sort(0); !errors.Is(err, ErrNotList) {
		t.Errorf("sort on scalar: %v, want ErrNotList", err)
	}
}

func TestSortKeyOutOfRange(t *testing.T) {
	v := List(List(Uint(1)), List(Uint(2)))
	if err := v.Sort(5); !errors.Is(err, ErrIndexRange) {
		t.Errorf("sort with bad key index: %v, want ErrIndexRange", err)
	}
}

func TestSortEmptyAndSingle(t *testing.T) {
	v := &Value{}
	v.MakeList(0)
	if err := v.Sort(0); err != nil {
		t.Errorf("sort empty: %v", err)
	}
	v = List(Uint(1))
	if err := v.Sort(0); err != nil {
		t.Errorf("sort single: %v", err)
	}
}

// Sorting must move whole elements: the owned payloads travel with them.
func TestSortMovesPayloads(t *testing.T) {
	v := List(Str("bb"), Str("aa"))
	if err := v.Sort(0); err != nil {
		t.Fatal(err)
	}
	a, _ := v.At(0)
	b, _ := v.At(1)
	if !a.EqualString("aa") || !b.EqualString("bb") {
		t.Errorf("got [%v %v]", a, b)
	}
	if a.Size() != 2 || b.Size() != 2 {
		t.Errorf("sizes [%d %d] did not travel with the elements", a.Size(), b.Size())
	}
}
