package attr

import "fmt"

// Sort orders the list elements in place with an unstable quicksort
// (Lomuto partition, last-element pivot). Strings compare bytewise, ints
// signed, uints unsigned. Container elements compare by the value at
// keyIdx inside each element, which must itself be a string or integer.
// Any other element kind aborts the sort with ErrUnsortable; a partially
// reordered list is never reported as success.
func (v *Value) Sort(keyIdx int) error {
	if v.kind != KindList {
		return fmt.Errorf("%w: sort on %s", ErrNotList, v.kind)
	}
	return quicksort(v, 0, v.size-1, keyIdx)
}

func quicksort(v *Value, lo, hi, keyIdx int) error {
	if lo >= hi {
		return nil
	}
	p, err := partition(v, lo, hi, keyIdx)
	if err != nil {
		return err
	}
	if err := quicksort(v, lo, p-1, keyIdx); err != nil {
		return err
	}
	return quicksort(v, p+1, hi, keyIdx)
}

func partition(v *Value, lo, hi, keyIdx int) (int, error) {
	i := lo - 1
	for j := lo; j < hi; j++ {
		le, err := lessEq(&v.list[j], &v.list[hi], keyIdx)
		if err != nil {
			return 0, err
		}
		if le {
			i++
			v.list[i], v.list[j] = v.list[j], v.list[i]
		}
	}
	i++
	v.list[i], v.list[hi] = v.list[hi], v.list[i]
	return i, nil
}

func lessEq(item, pivot *Value, keyIdx int) (bool, error) {
	switch item.kind {
	case KindString:
		if pivot.kind != KindString {
			return false, fmt.Errorf("%w: string against %s", ErrUnsortable, pivot.kind)
		}
		return item.strVal <= pivot.strVal, nil
	case KindInt:
		p, ok := pivot.wordInt()
		if !ok {
			return false, fmt.Errorf("%w: int against %s", ErrUnsortable, pivot.kind)
		}
		return item.intVal <= p, nil
	case KindUint:
		p, ok := pivot.wordUint()
		if !ok {
			return false, fmt.Errorf("%w: uint against %s", ErrUnsortable, pivot.kind)
		}
		return item.uintVal <= p, nil
	case KindList, KindDict:
		key, err := item.At(keyIdx)
		if err != nil {
			return false, fmt.Errorf("attr: sort key %d: %w", keyIdx, err)
		}
		pkey, err := pivot.At(keyIdx)
		if err != nil {
			return false, fmt.Errorf("attr: sort key %d: %w", keyIdx, err)
		}
		if key.kind == KindList || key.kind == KindDict {
			return false, fmt.Errorf("%w: nested %s sort key", ErrUnsortable, key.kind)
		}
		return lessEq(key, pkey, keyIdx)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsortable, item.kind)
	}
}

// wordInt reads either integer kind as its signed representation.
func (v *Value) wordInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.intVal, true
	case KindUint:
		return int64(v.uintVal), true
	default:
		return 0, false
	}
}

// wordUint reads either integer kind as its unsigned representation.
func (v *Value) wordUint() (uint64, bool) {
	switch v.kind {
	case KindInt:
		return uint64(v.intVal), true
	case KindUint:
		return v.uintVal, true
	default:
		return 0, false
	}
}
