package attr

import "fmt"

// Set upserts key in the dict: an existing pair's value is overwritten
// (releasing the old payload), a new pair is appended. Insertion order is
// preserved and is the only iteration order.
func (v *Value) Set(key string, item *Value) error {
	if v.kind != KindDict {
		return fmt.Errorf("%w: set on %s", ErrNotDict, v.kind)
	}
	for i := 0; i < v.size; i++ {
		if v.pairs[i].Key.strVal == key {
			v.pairs[i].Value.CopyFrom(item)
			return nil
		}
	}
	n := v.size
	v.reallocPairs(n + 1)
	v.pairs[n].Key.MakeString(key)
	v.pairs[n].Value.CopyFrom(item)
	return nil
}

// Get returns the value for key. A missing key is an error; Get never
// mutates the dict. The returned pointer stays valid until the dict grows.
func (v *Value) Get(key string) (*Value, error) {
	if v.kind != KindDict {
		return nil, fmt.Errorf("%w: get on %s", ErrNotDict, v.kind)
	}
	for i := 0; i < v.size; i++ {
		if v.pairs[i].Key.strVal == key {
			return &v.pairs[i].Value, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

// Ensure returns the value for key, appending a nil-valued pair first if
// the key is absent. This is the explicit counterpart of Get for callers
// that want create-on-miss.
func (v *Value) Ensure(key string) (*Value, error) {
	if v.kind != KindDict {
		return nil, fmt.Errorf("%w: ensure on %s", ErrNotDict, v.kind)
	}
	for i := 0; i < v.size; i++ {
		if v.pairs[i].Key.strVal == key {
			return &v.pairs[i].Value, nil
		}
	}
	n := v.size
	v.reallocPairs(n + 1)
	v.pairs[n].Key.MakeString(key)
	return &v.pairs[n].Value, nil
}

// HasKey reports whether key exists with a non-nil value. A key explicitly
// set to nil counts as absent.
func (v *Value) HasKey(key string) bool {
	if v.kind != KindDict {
		return false
	}
	for i := 0; i < v.size; i++ {
		if v.pairs[i].Key.strVal == key && !v.pairs[i].Value.IsNil() {
			return true
		}
	}
	return false
}

// KeyAt returns the idx-th key in insertion order.
func (v *Value) KeyAt(idx int) (*Value, error) {
	if v.kind != KindDict {
		return nil, fmt.Errorf("%w: key at on %s", ErrNotDict, v.kind)
	}
	if idx < 0 || idx >= v.size {
		return nil, fmt.Errorf("%w: pair %d of %d", ErrIndexRange, idx, v.size)
	}
	return &v.pairs[idx].Key, nil
}
