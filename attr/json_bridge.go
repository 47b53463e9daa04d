package attr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and Value trees. Unlike the text form, the JSON
// mapping is lossless for integer signedness. Data travels as a
// {"$data": "<base64>"} marker object; a service reference travels as its
// Type/ModuleName object and resolves back through a Registry on input.

// BridgeOptions configures the JSON and YAML bridges.
type BridgeOptions struct {
	// Registry resolves service-reference objects on input. Without one,
	// such an object is an error.
	Registry Registry
}

// dataMarker keys the lossless bytes encoding in bridge output.
const dataMarker = "$data"

// ToJSON renders v as JSON. Dict order is preserved.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case KindNil:
		buf.WriteString("null")

	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolVal))

	case KindInt:
		buf.WriteString(strconv.FormatInt(v.intVal, 10))

	case KindUint:
		buf.WriteString(strconv.FormatUint(v.uintVal, 10))

	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return fmt.Errorf("attr: %g has no JSON form", v.floatVal)
		}
		buf.WriteString(strconv.FormatFloat(v.floatVal, 'g', -1, 64))

	case KindString:
		return writeJSONString(buf, v.strVal)

	case KindData:
		buf.WriteString(`{"` + dataMarker + `":"`)
		buf.WriteString(base64.StdEncoding.EncodeToString(v.bytes()))
		buf.WriteString(`"}`)

	case KindList:
		buf.WriteByte('[')
		for i := 0; i < v.size; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, &v.list[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case KindDict:
		buf.WriteByte('{')
		for i := 0; i < v.size; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, v.pairs[i].Key.strVal); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, &v.pairs[i].Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case KindRef:
		if v.ref == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(`{"Type":`)
		if err := writeJSONString(buf, v.ref.FaceName()); err != nil {
			return err
		}
		buf.WriteString(`,"ModuleName":`)
		if err := writeJSONString(buf, v.ref.ObjName()); err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// FromJSON parses JSON bytes into a Value tree, preserving object key
// order. Integral numbers become uint (int when negative), fractional
// become float, matching the text codec's storage rules while keeping
// signedness.
func FromJSON(data []byte, opts BridgeOptions) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec, opts.Registry)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("attr: trailing input after JSON value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, reg Registry) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("attr: JSON parse: %w", err)
	}

	switch t := tok.(type) {
	case nil:
		return Nil(), nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case json.Number:
		return numberValue(t.String())

	case json.Delim:
		switch t {
		case '[':
			out := &Value{kind: KindList}
			for dec.More() {
				elem, err := decodeJSON(dec, reg)
				if err != nil {
					return nil, err
				}
				n := out.size
				out.reallocList(n + 1)
				out.list[n] = *elem // move
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, fmt.Errorf("attr: JSON parse: %w", err)
			}
			return out, nil

		case '{':
			out := Dict()
			for dec.More() {
				ktok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("attr: JSON parse: %w", err)
				}
				key, ok := ktok.(string)
				if !ok {
					return nil, fmt.Errorf("attr: JSON object key %v", ktok)
				}
				elem, err := decodeJSON(dec, reg)
				if err != nil {
					return nil, err
				}
				slot, err := out.Ensure(key)
				if err != nil {
					return nil, err
				}
				*slot = *elem // move
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, fmt.Errorf("attr: JSON parse: %w", err)
			}
			return bridgeDict(out, reg)
		}
	}
	return nil, fmt.Errorf("attr: unexpected JSON token %v", tok)
}

// numberValue stores a decimal number text under the bridge kind rules.
func numberValue(s string) (*Value, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("attr: number %q: %w", s, err)
		}
		return Float(f), nil
	}
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("attr: number %q: %w", s, err)
		}
		return Int(i), nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("attr: number %q: %w", s, err)
	}
	return Uint(u), nil
}

// bridgeDict post-processes a decoded dict: the $data marker becomes a
// data value, the recognized service tag resolves to a ref, anything else
// stays a dict.
func bridgeDict(out *Value, reg Registry) (*Value, error) {
	if out.size == 1 && out.pairs[0].Key.strVal == dataMarker {
		enc := &out.pairs[0].Value
		if enc.kind != KindString {
			return nil, fmt.Errorf("attr: %s marker must hold a string", dataMarker)
		}
		raw, err := base64.StdEncoding.DecodeString(enc.strVal)
		if err != nil {
			return nil, fmt.Errorf("attr: %s marker: %w", dataMarker, err)
		}
		return Data(raw), nil
	}

	if tv, err := out.Get("Type"); err == nil && tv.EqualString(ServiceFace) {
		nv, err := out.Get("ModuleName")
		if err != nil || nv.kind != KindString {
			return nil, fmt.Errorf("%w: service reference without ModuleName", ErrUnresolved)
		}
		if reg == nil {
			return nil, fmt.Errorf("%w: %q (no registry)", ErrUnresolved, nv.strVal)
		}
		svc, ok := reg.Resolve(nv.strVal)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolved, nv.strVal)
		}
		return Ref(svc), nil
	}

	return out, nil
}
