package criteria

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindTime
	KindArray
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a tagged union of the scalar, array and map shapes a customer
// attribute or event property can take. The zero Value is null.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	t    time.Time
	arr  []Value
	m    map[string]Value
}

func Null() Value             { return Value{} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Number(n float64) Value  { return Value{kind: KindNumber, n: n} }
func Int(n int64) Value       { return Value{kind: KindNumber, n: float64(n)} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Time(t time.Time) Value  { return Value{kind: KindTime, t: t.UTC()} }
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: append([]Value(nil), vs...)} }
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// Strings builds an array value of strings.
func Strings(ss ...string) Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = String(s)
	}
	return Value{kind: KindArray, arr: vs}
}

// FromAny converts decoded JSON-like Go values into a Value. Unsupported
// types are rejected here so evaluation never sees them.
func FromAny(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Number(float64(x)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Value{}, fmt.Errorf("criteria: non-finite number %v", x)
		}
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("criteria: %w", err)
		}
		return Number(f), nil
	case string:
		return String(x), nil
	case time.Time:
		return Time(x), nil
	case []string:
		return Strings(x...), nil
	case []interface{}:
		vs := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			vs[i] = ev
		}
		return Value{kind: KindArray, arr: vs}, nil
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	}
	return Value{}, fmt.Errorf("criteria: unsupported value type %T", v)
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsTime returns the time held by v. Strings in RFC3339 or YYYY-MM-DD form
// are accepted as times.
func (v Value) AsTime() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindString:
		if t, err := time.Parse(time.RFC3339Nano, v.s); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", v.s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

func (v Value) AsMap() (map[string]Value, bool) {
	return v.m, v.kind == KindMap
}

// Text renders scalars for template substitution.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	case KindTime:
		return v.t.Format(time.RFC3339)
	case KindArray, KindMap:
		b, _ := json.Marshal(v)
		return string(b)
	}
	return ""
}

// Equal compares two values by kind and content. Numbers compare by value,
// so Int(1) equals Number(1.0), but String("1") never equals Int(1).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, a := range v.m {
			b, ok := o.m[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// wire form for time values; everything else maps onto plain JSON.
type timeJSON struct {
	Time time.Time `json:"$time"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindTime:
		return json.Marshal(timeJSON{Time: v.t})
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := v.m[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("criteria: cannot marshal %s", v.kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := fromJSON(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// fromJSON differs from FromAny only in recognising $time objects.
func fromJSON(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case map[string]interface{}:
		if len(x) == 1 {
			if s, ok := x["$time"].(string); ok {
				t, err := time.Parse(time.RFC3339Nano, s)
				if err != nil {
					return Value{}, fmt.Errorf("criteria: bad $time: %w", err)
				}
				return Time(t), nil
			}
		}
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := fromJSON(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	case []interface{}:
		vs := make([]Value, len(x))
		for i, e := range x {
			ev, err := fromJSON(e)
			if err != nil {
				return Value{}, err
			}
			vs[i] = ev
		}
		return Value{kind: KindArray, arr: vs}, nil
	}
	return FromAny(raw)
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return fmt.Sprintf("%d", int64(n))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", n), "0"), ".")
}

// Attributes is a customer profile or event property bag.
type Attributes map[string]Value

// Lookup resolves a field path. Dotted segments descend into map values;
// an exact key match wins over traversal so keys like "event.type" work.
func (a Attributes) Lookup(path string) (Value, bool) {
	if v, ok := a[path]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(path, ".")
	if !found {
		return Value{}, false
	}
	v, ok := a[head]
	if !ok {
		return Value{}, false
	}
	for {
		m, isMap := v.AsMap()
		if !isMap {
			return Value{}, false
		}
		if exact, ok := m[rest]; ok {
			return exact, true
		}
		head, rest, found = strings.Cut(rest, ".")
		next, ok := m[head]
		if !ok {
			return Value{}, false
		}
		if !found {
			return next, true
		}
		v = next
	}
}

// AttributesFromMap converts decoded JSON into Attributes.
func AttributesFromMap(raw map[string]interface{}) (Attributes, error) {
	attrs := make(Attributes, len(raw))
	for k, v := range raw {
		val, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		attrs[k] = val
	}
	return attrs, nil
}
