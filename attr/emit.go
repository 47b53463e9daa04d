package attr

import (
	"strconv"
	"strings"
)

// Encode serializes v to its textual configuration form. The output is
// byte-for-byte stable: strings are single-quoted with their contents
// unescaped, both integer kinds print the raw 64-bit word as unsigned
// decimal, floats carry exactly four decimal places, data bytes print as
// two uppercase hex digits. Each call uses its own buffer, so concurrent
// encodes never interfere.
//
// Two wire-format limits are inherited from the persisted config format:
// a string containing a quote character will not re-parse, and integer
// signedness does not survive the round trip. The JSON and YAML bridges
// are lossless for both.
func Encode(v *Value) string {
	var e encoder
	e.value(v)
	return e.sb.String()
}

type encoder struct {
	sb strings.Builder
}

const hexDigits = "0123456789ABCDEF"

func (e *encoder) value(v *Value) {
	if v == nil {
		e.sb.WriteString("None")
		return
	}
	switch v.kind {
	case KindNil:
		e.sb.WriteString("None")

	case KindBool:
		if v.boolVal {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}

	case KindInt:
		e.sb.WriteString(strconv.FormatUint(uint64(v.intVal), 10))

	case KindUint:
		e.sb.WriteString(strconv.FormatUint(v.uintVal, 10))

	case KindFloat:
		e.sb.WriteString(strconv.FormatFloat(v.floatVal, 'f', 4, 64))

	case KindString:
		e.sb.WriteByte('\'')
		e.sb.WriteString(v.strVal)
		e.sb.WriteByte('\'')

	case KindData:
		e.sb.WriteByte('(')
		for i, b := range v.bytes() {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteByte(hexDigits[b>>4])
			e.sb.WriteByte(hexDigits[b&0xF])
		}
		e.sb.WriteByte(')')

	case KindList:
		e.sb.WriteByte('[')
		for i := 0; i < v.size; i++ {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.value(&v.list[i])
		}
		e.sb.WriteByte(']')

	case KindDict:
		e.sb.WriteByte('{')
		for i := 0; i < v.size; i++ {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteByte('\'')
			e.sb.WriteString(v.pairs[i].Key.strVal)
			e.sb.WriteString("':")
			e.value(&v.pairs[i].Value)
		}
		e.sb.WriteByte('}')

	case KindRef:
		if v.ref == nil {
			e.sb.WriteString("None")
			return
		}
		e.sb.WriteString("{'Type':'")
		e.sb.WriteString(v.ref.FaceName())
		e.sb.WriteString("','ModuleName':'")
		e.sb.WriteString(v.ref.ObjName())
		e.sb.WriteString("'}")
	}
}
