package attr

import "fmt"

// Append deep-copies item onto the end of the list.
func (v *Value) Append(item *Value) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: append on %s", ErrNotList, v.kind)
	}
	n := v.size
	v.reallocList(n + 1)
	v.list[n].CopyFrom(item)
	return nil
}

// InsertAt deep-copies item into slot idx, shifting trailing elements
// right. idx may equal the current size, which appends.
func (v *Value) InsertAt(idx int, item *Value) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: insert on %s", ErrNotList, v.kind)
	}
	if idx < 0 || idx > v.size {
		return fmt.Errorf("%w: insert at %d, size %d", ErrIndexRange, idx, v.size)
	}
	n := v.size
	v.reallocList(n + 1)
	copy(v.list[idx+1:n+1], v.list[idx:n])
	v.list[idx] = Value{}
	v.list[idx].CopyFrom(item)
	return nil
}

// RemoveAt releases the element at idx and moves the last element into
// its slot. O(1), does not preserve order; use Trim to delete a range in
// order.
func (v *Value) RemoveAt(idx int) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: remove on %s", ErrNotList, v.kind)
	}
	if idx < 0 || idx >= v.size {
		return fmt.Errorf("%w: remove at %d, size %d", ErrIndexRange, idx, v.size)
	}
	last := v.size - 1
	v.list[idx] = Value{}
	if idx != last {
		v.list[idx] = v.list[last]
		v.list[last] = Value{}
	}
	v.size = last
	return nil
}

// Trim deletes the half-open element range [start, end), releasing the
// removed elements and keeping the survivors in relative order. The
// backing store is not shrunk.
func (v *Value) Trim(start, end int) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: trim on %s", ErrNotList, v.kind)
	}
	if start < 0 || end < start || end > v.size {
		return fmt.Errorf("%w: trim [%d,%d), size %d", ErrIndexRange, start, end, v.size)
	}
	if start == end {
		return nil
	}
	removed := end - start
	for i := start; i < end; i++ {
		v.list[i] = Value{}
	}
	copy(v.list[start:], v.list[end:v.size])
	// Zero the vacated tail so no slot aliases a moved payload.
	for i := v.size - removed; i < v.size; i++ {
		v.list[i] = Value{}
	}
	v.size -= removed
	return nil
}

// Swap exchanges two list elements, payload ownership included.
func (v *Value) Swap(i, j int) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: swap on %s", ErrNotList, v.kind)
	}
	if i < 0 || i >= v.size || j < 0 || j >= v.size {
		return fmt.Errorf("%w: swap %d,%d, size %d", ErrIndexRange, i, j, v.size)
	}
	v.list[i], v.list[j] = v.list[j], v.list[i]
	return nil
}
