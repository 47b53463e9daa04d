package attr

import (
	"errors"
	"fmt"
)

// Kind enumerates the payload interpretations a Value may hold. The kind
// alone decides which payload field is live; retagging releases the old
// payload first.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindData
	KindList
	KindDict
	KindRef
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindData:
		return "data"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Operation errors.
var (
	ErrNotIndexable = errors.New("attr: value is not indexable")
	ErrIndexRange   = errors.New("attr: index out of range")
	ErrKeyNotFound  = errors.New("attr: key not found")
	ErrNotData      = errors.New("attr: value is not data")
	ErrNotList      = errors.New("attr: value is not a list")
	ErrNotDict      = errors.New("attr: value is not a dict")
	ErrUnsortable   = errors.New("attr: unsortable element kind")
	ErrUnresolved   = errors.New("attr: module name not resolved")
)

// Data blobs of up to this many bytes are stored inline, without a
// separate allocation.
const inlineDataMax = 8

// Pair is one dict slot. The key is always a string-kind Value.
type Pair struct {
	Key   Value
	Value Value
}

// Value is the dynamic attribute carrier.
//
// Exactly one payload field is live at a time, selected by kind. size is
// the byte length for string/data, the element count for list, the pair
// count for dict, and zero for scalars. Container backing slices are
// page-rounded (see alloc.go); their length is the capacity, size the live
// count.
//
// The zero Value is nil-kind and ready to use.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	uintVal  uint64
	floatVal float64
	strVal   string

	// Data payload: inline when size <= inlineDataMax, heap otherwise.
	inline [inlineDataMax]byte
	data   []byte

	list  []Value
	pairs []Pair

	// Non-owning service handle for KindRef.
	ref Service

	size int
}

// ============================================================
// Constructors
// ============================================================

// Nil creates a nil value.
func Nil() *Value { return &Value{} }

// Bool creates a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Int creates a signed integer value.
func Int(i int64) *Value { return &Value{kind: KindInt, intVal: i} }

// Uint creates an unsigned integer value.
func Uint(u uint64) *Value { return &Value{kind: KindUint, uintVal: u} }

// Float creates a floating-point value.
func Float(f float64) *Value { return &Value{kind: KindFloat, floatVal: f} }

// Str creates a string value.
func Str(s string) *Value { return &Value{kind: KindString, strVal: s, size: len(s)} }

// Data creates a data value holding a copy of b.
func Data(b []byte) *Value {
	v := &Value{}
	v.MakeDataBytes(b)
	return v
}

// List creates a list value holding deep copies of the given elements.
func List(elems ...*Value) *Value {
	v := &Value{kind: KindList}
	for _, e := range elems {
		n := v.size
		v.reallocList(n + 1)
		v.list[n].CopyFrom(e)
	}
	return v
}

// Dict creates an empty dict value.
func Dict() *Value { return &Value{kind: KindDict} }

// Ref creates a reference value bound to svc. The service is not owned.
func Ref(svc Service) *Value { return &Value{kind: KindRef, ref: svc} }

// ============================================================
// Retagging mutators
// ============================================================
//
// Every Make* releases the previous payload, then establishes the new
// kind. They are the mutating counterparts of the constructors above.

// Release drops the owned payload and resets the value to nil-kind.
func (v *Value) Release() { *v = Value{} }

// MakeNil resets to nil-kind. Equivalent to Release.
func (v *Value) MakeNil() { v.Release() }

// MakeBool retags as a boolean.
func (v *Value) MakeBool(b bool) {
	v.Release()
	v.kind = KindBool
	v.boolVal = b
}

// MakeInt retags as a signed integer.
func (v *Value) MakeInt(i int64) {
	v.Release()
	v.kind = KindInt
	v.intVal = i
}

// MakeUint retags as an unsigned integer.
func (v *Value) MakeUint(u uint64) {
	v.Release()
	v.kind = KindUint
	v.uintVal = u
}

// MakeFloat retags as a float.
func (v *Value) MakeFloat(f float64) {
	v.Release()
	v.kind = KindFloat
	v.floatVal = f
}

// MakeString retags as a string.
func (v *Value) MakeString(s string) {
	v.Release()
	v.kind = KindString
	v.strVal = s
	v.size = len(s)
}

// MakeData retags as a zeroed data blob of n bytes.
func (v *Value) MakeData(n int) {
	v.Release()
	v.kind = KindData
	v.size = n
	if n > inlineDataMax {
		v.data = make([]byte, n)
	}
}

// MakeDataBytes retags as a data blob holding a copy of b.
func (v *Value) MakeDataBytes(b []byte) {
	v.MakeData(len(b))
	if len(b) > inlineDataMax {
		copy(v.data, b)
	} else {
		copy(v.inline[:], b)
	}
}

// MakeList retags as a list of n nil elements.
func (v *Value) MakeList(n int) {
	v.Release()
	v.kind = KindList
	if n > 0 {
		v.reallocList(n)
	}
}

// MakeDict retags as an empty dict.
func (v *Value) MakeDict() {
	v.Release()
	v.kind = KindDict
}

// MakeRef retags as a reference to svc.
func (v *Value) MakeRef(svc Service) {
	v.Release()
	v.kind = KindRef
	v.ref = svc
}

// ============================================================
// Clone
// ============================================================

// Clone returns a fully independent deep copy. Containers are copied
// element by element; a ref copies the handle only, never the service
// behind it.
func (v *Value) Clone() *Value {
	out := &Value{}
	out.CopyFrom(v)
	return out
}

// CopyFrom releases the receiver's payload and deep-copies src into it.
// Copying a value onto itself is a no-op.
func (v *Value) CopyFrom(src *Value) {
	if v == src {
		return
	}
	switch src.kind {
	case KindString:
		v.MakeString(src.strVal)
	case KindData:
		v.MakeDataBytes(src.bytes())
	case KindList:
		v.MakeList(src.size)
		for i := 0; i < src.size; i++ {
			v.list[i].CopyFrom(&src.list[i])
		}
	case KindDict:
		v.MakeDict()
		v.reallocPairs(src.size)
		for i := 0; i < src.size; i++ {
			v.pairs[i].Key.MakeString(src.pairs[i].Key.strVal)
			v.pairs[i].Value.CopyFrom(&src.pairs[i].Value)
		}
	default:
		// Scalars and refs own no heap payload.
		*v = *src
	}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the active kind.
func (v *Value) Kind() Kind { return v.kind }

// Size returns the byte length for string/data, the element count for
// list, the pair count for dict, and zero otherwise.
func (v *Value) Size() int { return v.size }

func (v *Value) IsNil() bool    { return v.kind == KindNil }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsInt() bool    { return v.kind == KindInt }
func (v *Value) IsUint() bool   { return v.kind == KindUint }
func (v *Value) IsFloat() bool  { return v.kind == KindFloat }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsData() bool   { return v.kind == KindData }
func (v *Value) IsList() bool   { return v.kind == KindList }
func (v *Value) IsDict() bool   { return v.kind == KindDict }
func (v *Value) IsRef() bool    { return v.kind == KindRef }

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("attr: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsInt returns the signed integer payload.
func (v *Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("attr: expected int, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsUint returns the unsigned integer payload.
func (v *Value) AsUint() (uint64, error) {
	if v.kind != KindUint {
		return 0, fmt.Errorf("attr: expected uint, got %s", v.kind)
	}
	return v.uintVal, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("attr: expected float, got %s", v.kind)
	}
	return v.floatVal, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("attr: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsBytes returns a copy of the data payload.
func (v *Value) AsBytes() ([]byte, error) {
	if v.kind != KindData {
		return nil, fmt.Errorf("%w: got %s", ErrNotData, v.kind)
	}
	out := make([]byte, v.size)
	copy(out, v.bytes())
	return out, nil
}

// AsRef returns the service handle.
func (v *Value) AsRef() (Service, error) {
	if v.kind != KindRef {
		return nil, fmt.Errorf("attr: expected ref, got %s", v.kind)
	}
	return v.ref, nil
}

// bytes returns the live data storage, inline or heap.
func (v *Value) bytes() []byte {
	if v.size <= inlineDataMax {
		return v.inline[:v.size]
	}
	return v.data[:v.size]
}

// ByteAt returns the idx-th byte of a data value.
func (v *Value) ByteAt(idx int) (byte, error) {
	if v.kind != KindData {
		return 0, fmt.Errorf("%w: got %s", ErrNotData, v.kind)
	}
	if idx < 0 || idx >= v.size {
		return 0, fmt.Errorf("%w: byte %d of %d", ErrIndexRange, idx, v.size)
	}
	return v.bytes()[idx], nil
}

// At returns the idx-th element of a list, or the idx-th value (in
// insertion order) of a dict. The returned pointer stays valid until the
// container grows.
func (v *Value) At(idx int) (*Value, error) {
	switch v.kind {
	case KindList:
		if idx < 0 || idx >= v.size {
			return nil, fmt.Errorf("%w: element %d of %d", ErrIndexRange, idx, v.size)
		}
		return &v.list[idx], nil
	case KindDict:
		if idx < 0 || idx >= v.size {
			return nil, fmt.Errorf("%w: pair %d of %d", ErrIndexRange, idx, v.size)
		}
		return &v.pairs[idx].Value, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotIndexable, v.kind)
	}
}

// EqualString reports whether v is a string with exactly the contents s.
func (v *Value) EqualString(s string) bool {
	return v.kind == KindString && v.strVal == s
}

// String renders a short debug form. Use Encode for the config text form.
func (v *Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%v", v.boolVal)
	case KindInt:
		return fmt.Sprintf("%d", v.intVal)
	case KindUint:
		return fmt.Sprintf("%d", v.uintVal)
	case KindFloat:
		return fmt.Sprintf("%g", v.floatVal)
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	case KindData:
		return fmt.Sprintf("<data len=%d>", v.size)
	case KindList:
		return fmt.Sprintf("<list len=%d>", v.size)
	case KindDict:
		return fmt.Sprintf("<dict len=%d>", v.size)
	case KindRef:
		if v.ref == nil {
			return "<ref nil>"
		}
		return fmt.Sprintf("<ref %s>", v.ref.ObjName())
	default:
		return "<unknown>"
	}
}
